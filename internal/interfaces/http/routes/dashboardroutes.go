package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type DashboardRouteConfig struct {
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDashboardRoutes(engine *gin.Engine, cfg *DashboardRouteConfig) {
	can := cfg.PermissionMiddleware.RequirePermission

	dashboard := engine.Group("/dashboard")
	dashboard.Use(cfg.AuthMiddleware.RequireAuth())
	{
		dashboard.GET("/stats", can("tickets", "view"), cfg.DashboardHandler.GetStats)
		dashboard.GET("/export-tickets", can("tickets", "export"), cfg.DashboardHandler.ExportTickets)
		dashboard.POST("/export-tickets", can("tickets", "export"), cfg.DashboardHandler.ExportTickets)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

// DirectoryRouteConfig holds dependencies for the customer and technician directories.
type DirectoryRouteConfig struct {
	CustomerHandler      *handlers.CustomerHandler
	SupportHandler       *handlers.SupportHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// crudHandler is the handler shape shared by directory resources.
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func SetupDirectoryRoutes(engine *gin.Engine, cfg *DirectoryRouteConfig) {
	setupCRUD(engine, "customers", cfg.CustomerHandler, cfg)
	setupCRUD(engine, "supports", cfg.SupportHandler, cfg)
}

func setupCRUD(engine *gin.Engine, resource string, h crudHandler, cfg *DirectoryRouteConfig) {
	can := cfg.PermissionMiddleware.RequirePermission

	group := engine.Group("/" + resource)
	group.Use(cfg.AuthMiddleware.RequireAuth())
	{
		group.GET("", can(resource, "view"), h.List)
		group.POST("", can(resource, "create"), h.Create)
		group.GET("/:id", can(resource, "view"), h.Get)
		group.PUT("/:id", can(resource, "update"), h.Update)
		group.DELETE("/:id", can(resource, "delete"), h.Delete)
	}
}

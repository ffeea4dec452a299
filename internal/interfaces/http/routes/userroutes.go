package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user, role and permission administration.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	PermissionHandler    *handlers.PermissionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user management routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	can := cfg.PermissionMiddleware.RequirePermission
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	users := engine.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("", can("users", "view"), cfg.UserHandler.ListUsers)
		users.POST("", can("users", "create"), cfg.UserHandler.CreateUser)
		users.GET("/:id", can("users", "view"), cfg.UserHandler.GetUser)
		users.PUT("/:id", can("users", "update"), cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", can("users", "delete"), cfg.UserHandler.DeleteUser)
	}

	roles := engine.Group("/roles")
	roles.Use(requireAuth)
	{
		roles.GET("", can("roles", "view"), cfg.PermissionHandler.ListRoles)
		roles.POST("", can("roles", "create"), cfg.PermissionHandler.CreateRole)
		roles.PUT("/:id/permissions", can("roles", "update"), cfg.PermissionHandler.SyncPermissions)
		roles.GET("/:id", can("roles", "view"), cfg.PermissionHandler.GetRole)
		roles.PUT("/:id", can("roles", "update"), cfg.PermissionHandler.UpdateRole)
		roles.DELETE("/:id", can("roles", "delete"), cfg.PermissionHandler.DeleteRole)
	}

	engine.GET("/permissions", requireAuth, can("roles", "view"), cfg.PermissionHandler.ListPermissions)
}

package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/orris-inc/helpdesk/docs"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/routes"
)

// SetupRoutes configures the global middleware chain and all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.CSRF())
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	if c.cfg.Server.Mode != gin.ReleaseMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:       c.hdlrs.authHandler,
		AuthMiddleware:    c.authMiddleware,
		LoginRateLimit:    c.loginRateLimit,
		RegisterRateLimit: c.registerRateLimit,
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupDashboardRoutes(c.engine, &routes.DashboardRouteConfig{
		DashboardHandler:     c.hdlrs.dashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupDirectoryRoutes(c.engine, &routes.DirectoryRouteConfig{
		CustomerHandler:      c.hdlrs.customerHandler,
		SupportHandler:       c.hdlrs.supportHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupUserRoutes(c.engine, &routes.UserRouteConfig{
		UserHandler:          c.hdlrs.userHandler,
		PermissionHandler:    c.hdlrs.permissionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Run starts the HTTP server
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}

// Shutdown releases connections owned by the container. The database handle
// belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}

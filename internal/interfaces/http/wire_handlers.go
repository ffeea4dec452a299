package http

import (
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	permissionHandler *handlers.PermissionHandler

	// Directory
	customerHandler *handlers.CustomerHandler
	supportHandler  *handlers.SupportHandler

	// Tickets
	ticketHandler    *ticketHandlers.TicketHandler
	dashboardHandler *handlers.DashboardHandler

	healthHandler *handlers.HealthHandler
}

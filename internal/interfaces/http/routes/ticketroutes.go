package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	can := cfg.PermissionMiddleware.RequirePermission

	tickets := engine.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.GET("", can("tickets", "view"), cfg.TicketHandler.ListTickets)
		tickets.POST("", can("tickets", "create"), cfg.TicketHandler.CreateTicket)

		tickets.PATCH("/:id/status", can("tickets", "update"), cfg.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/assign", can("tickets", "assign"), cfg.TicketHandler.AssignTicket)
		tickets.POST("/:id/comments", can("tickets", "comment"), cfg.TicketHandler.AddComment)
		tickets.GET("/:id/documents/:document_id", can("tickets", "view"), cfg.TicketHandler.DownloadDocument)
		tickets.GET("/:id/comments/:comment_id/attachments/:attachment_id", can("tickets", "view"), cfg.TicketHandler.DownloadCommentAttachment)

		tickets.GET("/:id", can("tickets", "view"), cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id", can("tickets", "update"), cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", can("tickets", "delete"), cfg.TicketHandler.DeleteTicket)
	}
}

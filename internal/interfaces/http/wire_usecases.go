package http

import (
	"github.com/orris-inc/helpdesk/internal/application/customer"
	"github.com/orris-inc/helpdesk/internal/application/permission"
	"github.com/orris-inc/helpdesk/internal/application/support"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
)

// allUseCases holds all use case and application service instances.
type allUseCases struct {
	// Auth
	loginUC          *userUsecases.LoginUseCase
	registerUC       *userUsecases.RegisterUseCase
	getCurrentUserUC *userUsecases.GetCurrentUserUseCase

	// Users
	createUserUC *userUsecases.CreateUserUseCase
	updateUserUC *userUsecases.UpdateUserUseCase
	deleteUserUC *userUsecases.DeleteUserUseCase
	getUserUC    *userUsecases.GetUserUseCase
	listUsersUC  *userUsecases.ListUsersUseCase

	// Directory
	customerService   *customer.Service
	supportService    *support.Service
	permissionService *permission.Service

	// Tickets
	createTicketUC   *ticketUsecases.CreateTicketUseCase
	updateTicketUC   *ticketUsecases.UpdateTicketUseCase
	deleteTicketUC   *ticketUsecases.DeleteTicketUseCase
	getTicketUC      *ticketUsecases.GetTicketUseCase
	listTicketsUC    *ticketUsecases.ListTicketsUseCase
	changeStatusUC   *ticketUsecases.ChangeStatusUseCase
	assignTicketUC   *ticketUsecases.AssignTicketUseCase
	addCommentUC     *ticketUsecases.AddCommentUseCase
	getTicketFileUC  *ticketUsecases.GetTicketFileUseCase
	exportTicketsUC  *ticketUsecases.ExportTicketsUseCase
	getTicketStatsUC *ticketUsecases.GetTicketStatsUseCase
}

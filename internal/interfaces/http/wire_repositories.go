package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo       *repository.UserRepository
	customerRepo   *repository.CustomerRepository
	supportRepo    *repository.SupportRepository
	roleRepo       *repository.RoleRepositoryImpl
	permissionRepo *repository.PermissionRepositoryImpl
	ticketRepo     *repository.TicketRepository
	documentRepo   *repository.TicketDocumentRepository
	commentRepo    *repository.TicketCommentRepository
	activityRepo   *repository.TicketActivityRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db, log),
		customerRepo:   repository.NewCustomerRepository(db),
		supportRepo:    repository.NewSupportRepository(db),
		roleRepo:       repository.NewRoleRepository(db),
		permissionRepo: repository.NewPermissionRepository(db),
		ticketRepo:     repository.NewTicketRepository(db),
		documentRepo:   repository.NewTicketDocumentRepository(db),
		commentRepo:    repository.NewTicketCommentRepository(db),
		activityRepo:   repository.NewTicketActivityRepository(db),
	}
}

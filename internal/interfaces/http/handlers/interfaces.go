package handlers

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/customer"
	"github.com/orris-inc/helpdesk/internal/application/permission"
	"github.com/orris-inc/helpdesk/internal/application/support"
	ticketdto "github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	ticketusecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
)

// Use case interfaces consumed by the handlers; tests substitute mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*usecases.LoginResult, error)
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*dto.CurrentUserDTO, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}

type updateUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error)
}

type deleteUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteUserCommand) error
}

type getUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

type listUsersUseCase interface {
	Execute(ctx context.Context, query usecases.ListUsersQuery) (*dto.ListUsersResponse, error)
}

type customerService interface {
	List(ctx context.Context, query customer.ListQuery) (*customer.ListResult, error)
	Get(ctx context.Context, id uint) (*customer.CustomerDTO, error)
	Create(ctx context.Context, cmd customer.SaveCommand) (*customer.CustomerDTO, error)
	Update(ctx context.Context, id uint, cmd customer.SaveCommand) (*customer.CustomerDTO, error)
	Delete(ctx context.Context, id uint) error
}

type supportService interface {
	List(ctx context.Context, query support.ListQuery) (*support.ListResult, error)
	Get(ctx context.Context, id uint) (*support.SupportDTO, error)
	Create(ctx context.Context, cmd support.SaveCommand) (*support.SupportDTO, error)
	Update(ctx context.Context, id uint, cmd support.SaveCommand) (*support.SupportDTO, error)
	Delete(ctx context.Context, id uint) error
}

type roleService interface {
	ListPermissions(ctx context.Context) ([]permission.PermissionDTO, error)
	ListRoles(ctx context.Context) ([]permission.RoleDTO, error)
	GetRole(ctx context.Context, id uint) (*permission.RoleDTO, error)
	CreateRole(ctx context.Context, cmd permission.CreateRoleCommand) (*permission.RoleDTO, error)
	UpdateRole(ctx context.Context, id uint, cmd permission.UpdateRoleCommand) (*permission.RoleDTO, error)
	DeleteRole(ctx context.Context, id uint) error
	SyncPermissions(ctx context.Context, roleID uint, codes []string) (*permission.RoleDTO, error)
}

type ticketStatsUseCase interface {
	Execute(ctx context.Context, query ticketusecases.GetTicketStatsQuery) (*ticketdto.TicketStatsDTO, error)
}

type exportTicketsUseCase interface {
	Execute(ctx context.Context, cmd ticketusecases.ExportTicketsCommand) (*ticketusecases.ExportTicketsResult, error)
}

package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo domainUser.Repository
	roles    RoleAssigner
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo domainUser.Repository, roles RoleAssigner, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, roles: roles, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}

	roles, err := rolesOf(ctx, uc.roles, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user roles", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	out := dto.ToUserDTO(u, roles)
	return &out, nil
}

type ListUsersQuery struct {
	Search   string
	Role     string
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo domainUser.Repository
	roles    RoleAssigner
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo domainUser.Repository, roles RoleAssigner, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, roles: roles, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*dto.ListUsersResponse, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.DefaultPageSize
	}

	users, total, err := uc.userRepo.List(ctx, domainUser.ListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   strings.TrimSpace(query.Search),
		Role:     strings.TrimSpace(query.Role),
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID())
	}
	roles := map[uint][]string{}
	if len(ids) > 0 {
		if roles, err = uc.roles.GetUserRoleSlugs(ctx, ids); err != nil {
			uc.logger.Errorw("failed to load user roles", "error", err)
			return nil, errors.NewInternalError("failed to list users")
		}
	}

	resp := &dto.ListUsersResponse{
		Users:    make([]dto.UserDTO, 0, len(users)),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.ToUserDTO(u, roles[u.ID()]))
	}
	return resp, nil
}

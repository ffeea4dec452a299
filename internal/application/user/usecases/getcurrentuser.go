package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo     domainUser.Repository
	customerRepo customer.Repository
	supportRepo  support.Repository
	roles        RoleAssigner
	policies     PolicyReader
	logger       logger.Interface
}

func NewGetCurrentUserUseCase(
	userRepo domainUser.Repository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	roles RoleAssigner,
	policies PolicyReader,
	logger logger.Interface,
) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		roles:        roles,
		policies:     policies,
		logger:       logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.CurrentUserDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get current user")
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("user no longer exists")
	}

	out, err := uc.build(ctx, u)
	if err != nil {
		uc.logger.Errorw("failed to build current user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get current user")
	}
	return out, nil
}

func (uc *GetCurrentUserUseCase) build(ctx context.Context, u *domainUser.User) (*dto.CurrentUserDTO, error) {
	roles, err := rolesOf(ctx, uc.roles, u.ID())
	if err != nil {
		return nil, err
	}

	perms := map[string]bool{}
	for _, role := range roles {
		policies, err := uc.policies.GetPoliciesForRole(role)
		if err != nil {
			return nil, fmt.Errorf("policies for %s: %w", role, err)
		}
		for _, p := range policies {
			perms[p[0]+":"+p[1]] = true
		}
	}

	out := &dto.CurrentUserDTO{
		UserDTO:     dto.ToUserDTO(u, roles),
		Permissions: make([]string, 0, len(perms)),
	}
	for code := range perms {
		out.Permissions = append(out.Permissions, code)
	}
	sort.Strings(out.Permissions)

	c, err := uc.customerRepo.GetByEmail(ctx, u.Email().String())
	if err != nil {
		return nil, err
	}
	if c != nil {
		out.Customer = &dto.LinkedProfileDTO{ID: c.ID(), Name: c.Name()}
	}

	s, err := uc.supportRepo.GetByEmail(ctx, u.Email().String())
	if err != nil {
		return nil, err
	}
	if s != nil {
		out.Support = &dto.LinkedProfileDTO{ID: s.ID(), Name: s.Name()}
	}
	return out, nil
}

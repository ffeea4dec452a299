package usecases

import (
	"context"
	"fmt"

	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
)

// IdentityLoader reads a user's stored email and roles. Session tokens carry
// both as claims, but those go stale once an administrator edits the user.
type IdentityLoader struct {
	userRepo domainUser.Repository
	roles    RoleAssigner
}

func NewIdentityLoader(userRepo domainUser.Repository, roles RoleAssigner) *IdentityLoader {
	return &IdentityLoader{
		userRepo: userRepo,
		roles:    roles,
	}
}

func (l *IdentityLoader) LoadIdentity(ctx context.Context, userID uint) (string, []string, bool, error) {
	u, err := l.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, false, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return "", nil, false, nil
	}

	roles, err := rolesOf(ctx, l.roles, userID)
	if err != nil {
		return "", nil, false, fmt.Errorf("load user roles: %w", err)
	}
	return u.Email().String(), roles, true, nil
}

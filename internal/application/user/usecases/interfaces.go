package usecases

import (
	"context"
	"time"
)

// RoleAssigner stores user→role links. AssignRolesToUser and RemoveUser join
// the caller's transaction; SyncUserRoles mirrors the committed links to the
// enforcer and must run after commit.
type RoleAssigner interface {
	AssignRolesToUser(ctx context.Context, userID uint, slugs []string) error
	GetUserRoleSlugs(ctx context.Context, userIDs []uint) (map[uint][]string, error)
	RemoveUser(ctx context.Context, userID uint) error
	SyncUserRoles(ctx context.Context, userID uint) error
}

// PolicyReader lists the permissions granted to a role.
type PolicyReader interface {
	GetPoliciesForRole(role string) ([][2]string, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID uint, email string, roles []string) (token string, expiresAt time.Time, err error)
}

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func rolesOf(ctx context.Context, roles RoleAssigner, userID uint) ([]string, error) {
	byUser, err := roles.GetUserRoleSlugs(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	return byUser[userID], nil
}

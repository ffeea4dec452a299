package permission

import "context"

// RoleRepository persists roles and their user/permission links. Lookups
// return (nil, nil) when nothing matches.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetBySlug(ctx context.Context, slug string) (*Role, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	SetPermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
	GetPermissions(ctx context.Context, roleID uint) ([]*Permission, error)

	SetUserRoles(ctx context.Context, userID uint, roleIDs []uint) error
	GetUserRoles(ctx context.Context, userID uint) ([]*Role, error)
	GetRolesForUsers(ctx context.Context, userIDs []uint) (map[uint][]*Role, error)
	GetUserIDsByRole(ctx context.Context, roleID uint) ([]uint, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByCode(ctx context.Context, resource, action string) (*Permission, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
}

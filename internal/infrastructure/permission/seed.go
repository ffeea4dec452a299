package permission

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Seeder installs the default permissions and roles. Existing roles keep
// their permission sets unless they are declared with the wildcard.
type Seeder struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	enforcer       permission.PermissionEnforcer
	logger         logger.Interface
}

func NewSeeder(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		enforcer:       enforcer,
		logger:         logger,
	}
}

func (s *Seeder) Seed(ctx context.Context, defaults *Defaults) error {
	byCode := make(map[string]*permission.Permission, len(defaults.Permissions))
	for _, def := range defaults.Permissions {
		p, err := s.ensurePermission(ctx, def)
		if err != nil {
			return err
		}
		byCode[def.Code] = p
	}

	for _, def := range defaults.Roles {
		role, created, err := s.ensureRole(ctx, def)
		if err != nil {
			return err
		}
		if !created && !def.GrantsAll() {
			continue
		}

		perms, err := s.rolePermissions(ctx, def, byCode)
		if err != nil {
			return err
		}
		if err := s.applyPermissions(ctx, role, perms); err != nil {
			return err
		}
		s.logger.Infow("seeded role permissions", "role", role.Slug(), "count", len(perms))
	}

	return nil
}

func (s *Seeder) ensurePermission(ctx context.Context, def PermissionDefinition) (*permission.Permission, error) {
	resource, action, err := permission.ParseCode(def.Code)
	if err != nil {
		return nil, err
	}

	existing, err := s.permissionRepo.GetByCode(ctx, resource.String(), action.String())
	if err != nil {
		return nil, fmt.Errorf("failed to look up permission %s: %w", def.Code, err)
	}
	if existing != nil {
		return existing, nil
	}

	p, err := permission.NewPermission(resource, action, def.Description)
	if err != nil {
		return nil, err
	}
	if err := s.permissionRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create permission %s: %w", def.Code, err)
	}
	s.logger.Infow("permission created", "code", def.Code)
	return p, nil
}

func (s *Seeder) ensureRole(ctx context.Context, def RoleDefinition) (*permission.Role, bool, error) {
	existing, err := s.roleRepo.GetBySlug(ctx, def.Slug)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up role %s: %w", def.Slug, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	newRole := permission.NewRole
	if def.System {
		newRole = permission.NewSystemRole
	}
	role, err := newRole(def.Name, def.Slug, def.Description)
	if err != nil {
		return nil, false, err
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, false, fmt.Errorf("failed to create role %s: %w", def.Slug, err)
	}
	s.logger.Infow("role created", "slug", def.Slug)
	return role, true, nil
}

func (s *Seeder) rolePermissions(ctx context.Context, def RoleDefinition, byCode map[string]*permission.Permission) ([]*permission.Permission, error) {
	if def.GrantsAll() {
		all, err := s.permissionRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list permissions: %w", err)
		}
		return all, nil
	}

	perms := make([]*permission.Permission, 0, len(def.Permissions))
	for _, code := range def.Permissions {
		p, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("role %s references undeclared permission %s", def.Slug, code)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

func (s *Seeder) applyPermissions(ctx context.Context, role *permission.Role, perms []*permission.Permission) error {
	ids := make([]uint, 0, len(perms))
	policies := make([][2]string, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID())
		policies = append(policies, [2]string{p.Resource().String(), p.Action().String()})
	}

	if err := s.roleRepo.SetPermissions(ctx, role.ID(), ids); err != nil {
		return fmt.Errorf("failed to set permissions of %s: %w", role.Slug(), err)
	}
	return s.enforcer.SetRolePolicies(role.Slug(), policies)
}

package permission

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type PermissionDTO struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

type RoleDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	IsSystem    bool            `json:"is_system"`
	Permissions []PermissionDTO `json:"permissions,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateRoleCommand struct {
	Name        string
	Slug        string
	Description string
	Permissions []string
}

type UpdateRoleCommand struct {
	Name        string
	Description string
}

func ToPermissionDTO(p *permission.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          p.ID(),
		Code:        p.Code(),
		Resource:    p.Resource().String(),
		Action:      p.Action().String(),
		Description: p.Description(),
	}
}

func ToRoleDTO(r *permission.Role, perms []*permission.Permission) RoleDTO {
	out := RoleDTO{
		ID:          r.ID(),
		Name:        r.Name(),
		Slug:        r.Slug(),
		Description: r.Description(),
		IsSystem:    r.IsSystem(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, ToPermissionDTO(p))
	}
	return out
}

// Service manages roles and permissions. The relational tables are the
// editable source; every change is mirrored into the enforcer.
type Service struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	enforcer       permission.PermissionEnforcer
	logger         logger.Interface
}

func NewService(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *Service {
	return &Service{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		enforcer:       enforcer,
		logger:         logger,
	}
}

func subject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func (s *Service) CheckPermission(ctx context.Context, userID uint, resource, action string) (bool, error) {
	return s.enforcer.Enforce(subject(userID), resource, action)
}

func (s *Service) ListPermissions(ctx context.Context) ([]PermissionDTO, error) {
	perms, err := s.permissionRepo.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list permissions", "error", err)
		return nil, errors.NewInternalError("failed to list permissions")
	}
	out := make([]PermissionDTO, 0, len(perms))
	for _, p := range perms {
		out = append(out, ToPermissionDTO(p))
	}
	return out, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]RoleDTO, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list roles", "error", err)
		return nil, errors.NewInternalError("failed to list roles")
	}
	out := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, ToRoleDTO(r, nil))
	}
	return out, nil
}

func (s *Service) GetRole(ctx context.Context, id uint) (*RoleDTO, error) {
	role, err := s.loadRole(ctx, id)
	if err != nil {
		return nil, err
	}
	perms, err := s.roleRepo.GetPermissions(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get role permissions", "role_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get role")
	}
	out := ToRoleDTO(role, perms)
	return &out, nil
}

func (s *Service) CreateRole(ctx context.Context, cmd CreateRoleCommand) (*RoleDTO, error) {
	role, err := permission.NewRole(cmd.Name, cmd.Slug, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.roleRepo.ExistsBySlug(ctx, role.Slug())
	if err != nil {
		s.logger.Errorw("failed to check role slug", "slug", role.Slug(), "error", err)
		return nil, errors.NewInternalError("failed to create role")
	}
	if exists {
		return nil, errors.NewFieldValidationError(map[string]string{"slug": "slug is already taken"})
	}

	perms, err := s.resolvePermissions(ctx, cmd.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		s.logger.Errorw("failed to create role", "slug", role.Slug(), "error", err)
		return nil, errors.NewInternalError("failed to create role")
	}
	if err := s.applyPermissions(ctx, role, perms); err != nil {
		return nil, err
	}

	s.logger.Infow("role created successfully", "role_id", role.ID(), "slug", role.Slug(), "permissions", len(perms))
	out := ToRoleDTO(role, perms)
	return &out, nil
}

func (s *Service) UpdateRole(ctx context.Context, id uint, cmd UpdateRoleCommand) (*RoleDTO, error) {
	role, err := s.loadRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.UpdateName(cmd.Name); err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"name": err.Error()})
	}
	role.UpdateDescription(cmd.Description)

	if err := s.roleRepo.Update(ctx, role); err != nil {
		s.logger.Errorw("failed to update role", "role_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update role")
	}

	s.logger.Infow("role updated successfully", "role_id", id)
	out := ToRoleDTO(role, nil)
	return &out, nil
}

func (s *Service) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.loadRole(ctx, id)
	if err != nil {
		return err
	}
	if err := role.CheckDeletable(); err != nil {
		return errors.NewForbiddenError(err.Error())
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete role", "role_id", id, "error", err)
		return errors.NewInternalError("failed to delete role")
	}
	if err := s.enforcer.RemoveRole(role.Slug()); err != nil {
		s.logger.Errorw("failed to remove role from enforcer", "slug", role.Slug(), "error", err)
		return errors.NewInternalError("failed to delete role")
	}

	s.logger.Infow("role deleted successfully", "role_id", id, "slug", role.Slug())
	return nil
}

// SyncPermissions replaces the role's permission set with codes ("resource:action").
func (s *Service) SyncPermissions(ctx context.Context, roleID uint, codes []string) (*RoleDTO, error) {
	role, err := s.loadRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	perms, err := s.resolvePermissions(ctx, codes)
	if err != nil {
		return nil, err
	}
	if err := s.applyPermissions(ctx, role, perms); err != nil {
		return nil, err
	}

	s.logger.Infow("role permissions synced", "role_id", roleID, "slug", role.Slug(), "permissions", len(perms))
	out := ToRoleDTO(role, perms)
	return &out, nil
}

// AssignRolesToUser replaces a user's roles by slug.
func (s *Service) AssignRolesToUser(ctx context.Context, userID uint, slugs []string) error {
	slugs = dedupe(slugs)
	roles, err := s.roleRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		s.logger.Errorw("failed to load roles", "slugs", slugs, "error", err)
		return errors.NewInternalError("failed to assign roles")
	}
	if len(roles) != len(slugs) {
		found := make(map[string]bool, len(roles))
		for _, r := range roles {
			found[r.Slug()] = true
		}
		var missing []string
		for _, slug := range slugs {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		return errors.NewFieldValidationError(map[string]string{
			"roles": fmt.Sprintf("unknown roles: %s", strings.Join(missing, ", ")),
		})
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID())
	}

	if err := s.roleRepo.SetUserRoles(ctx, userID, ids); err != nil {
		s.logger.Errorw("failed to save user roles", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to assign roles")
	}
	return nil
}

// SyncUserRoles mirrors the user's stored roles into the enforcer. Call it
// after the transaction that changed user_roles has committed: the casbin
// adapter writes through its own connection.
func (s *Service) SyncUserRoles(ctx context.Context, userID uint) error {
	roles, err := s.roleRepo.GetUserRoles(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user roles: %w", err)
	}
	if len(roles) == 0 {
		if err := s.enforcer.DeleteUser(subject(userID)); err != nil {
			return fmt.Errorf("remove user from enforcer: %w", err)
		}
		return nil
	}

	slugs := make([]string, 0, len(roles))
	for _, r := range roles {
		slugs = append(slugs, r.Slug())
	}
	if err := s.enforcer.SetRolesForUser(subject(userID), slugs); err != nil {
		return fmt.Errorf("sync user roles to enforcer: %w", err)
	}
	return nil
}

// GetUserRoleSlugs returns the role slugs held by each user.
func (s *Service) GetUserRoleSlugs(ctx context.Context, userIDs []uint) (map[uint][]string, error) {
	byUser, err := s.roleRepo.GetRolesForUsers(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}
	out := make(map[uint][]string, len(byUser))
	for uid, roles := range byUser {
		slugs := make([]string, 0, len(roles))
		for _, r := range roles {
			slugs = append(slugs, r.Slug())
		}
		sort.Strings(slugs)
		out[uid] = slugs
	}
	return out, nil
}

// RemoveUser drops every stored role link of a deleted user.
func (s *Service) RemoveUser(ctx context.Context, userID uint) error {
	if err := s.roleRepo.SetUserRoles(ctx, userID, nil); err != nil {
		return fmt.Errorf("clear user roles: %w", err)
	}
	return nil
}

func (s *Service) loadRole(ctx context.Context, id uint) (*permission.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get role", "role_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get role")
	}
	if role == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("role %d not found", id))
	}
	return role, nil
}

func (s *Service) resolvePermissions(ctx context.Context, codes []string) ([]*permission.Permission, error) {
	codes = dedupe(codes)
	perms := make([]*permission.Permission, 0, len(codes))
	for _, code := range codes {
		resource, action, err := permission.ParseCode(code)
		if err != nil {
			return nil, errors.NewFieldValidationError(map[string]string{"permissions": err.Error()})
		}
		p, err := s.permissionRepo.GetByCode(ctx, resource.String(), action.String())
		if err != nil {
			s.logger.Errorw("failed to load permission", "code", code, "error", err)
			return nil, errors.NewInternalError("failed to resolve permissions")
		}
		if p == nil {
			return nil, errors.NewFieldValidationError(map[string]string{"permissions": fmt.Sprintf("unknown permission: %s", code)})
		}
		perms = append(perms, p)
	}
	return perms, nil
}

func (s *Service) applyPermissions(ctx context.Context, role *permission.Role, perms []*permission.Permission) error {
	ids := make([]uint, 0, len(perms))
	policies := make([][2]string, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID())
		policies = append(policies, [2]string{p.Resource().String(), p.Action().String()})
	}

	if err := s.roleRepo.SetPermissions(ctx, role.ID(), ids); err != nil {
		s.logger.Errorw("failed to save role permissions", "role_id", role.ID(), "error", err)
		return errors.NewInternalError("failed to save role permissions")
	}
	if err := s.enforcer.SetRolePolicies(role.Slug(), policies); err != nil {
		s.logger.Errorw("failed to sync role policies", "slug", role.Slug(), "error", err)
		return errors.NewInternalError("failed to save role permissions")
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ permission.RoleRepository = (*RoleRepositoryImpl)(nil)

type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(gdb *gorm.DB) *RoleRepositoryImpl {
	return &RoleRepositoryImpl{db: gdb}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *permission.Role) error {
	model := &models.RoleModel{
		Name:        role.Name(),
		Slug:        role.Slug(),
		Description: role.Description(),
		IsSystem:    role.IsSystem(),
		CreatedAt:   role.CreatedAt(),
		UpdatedAt:   role.UpdatedAt(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	return role.SetID(model.ID)
}

func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return mappers.RoleToDomain(&model)
}

func (r *RoleRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role by slug: %w", err)
	}

	return mappers.RoleToDomain(&model)
}

func (r *RoleRepositoryImpl) GetBySlugs(ctx context.Context, slugs []string) ([]*permission.Role, error) {
	if len(slugs) == 0 {
		return []*permission.Role{}, nil
	}

	var roleModels []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("slug IN ?", slugs).Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get roles by slug: %w", err)
	}
	return rolesToDomain(roleModels)
}

func (r *RoleRepositoryImpl) List(ctx context.Context) ([]*permission.Role, error) {
	var roleModels []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return rolesToDomain(roleModels)
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *permission.Role) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.RoleModel{}).
		Where("id = ?", role.ID()).
		Updates(map[string]interface{}{
			"name":        role.Name(),
			"description": role.Description(),
			"updated_at":  role.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}
	return nil
}

// Delete removes the role together with its permission and user links.
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role permissions: %w", err)
	}
	if err := tx.Where("role_id = ?", id).Delete(&models.UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role assignments: %w", err)
	}
	if err := tx.Delete(&models.RoleModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.RoleModel{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role slug existence: %w", err)
	}
	return count > 0, nil
}

// SetPermissions replaces the role's permission links.
func (r *RoleRepositoryImpl) SetPermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	rolePermissions := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, permID := range permissionIDs {
		rolePermissions = append(rolePermissions, models.RolePermissionModel{
			RoleID:       roleID,
			PermissionID: permID,
		})
	}

	if err := tx.Create(&rolePermissions).Error; err != nil {
		return fmt.Errorf("failed to assign permissions: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) GetPermissions(ctx context.Context, roleID uint) ([]*permission.Permission, error) {
	var permissionModels []models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TablePermissions+" p").
		Select("p.*").
		Joins("JOIN "+constants.TableRolePermissions+" rp ON rp.permission_id = p.id").
		Where("rp.role_id = ?", roleID).
		Order("p.resource ASC, p.action ASC").
		Find(&permissionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	return permissionsToDomain(permissionModels)
}

// SetUserRoles replaces the user's role links.
func (r *RoleRepositoryImpl) SetUserRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear user roles: %w", err)
	}
	if len(roleIDs) == 0 {
		return nil
	}

	links := make([]models.UserRoleModel, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		links = append(links, models.UserRoleModel{UserID: userID, RoleID: roleID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to assign user roles: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) GetUserRoles(ctx context.Context, userID uint) ([]*permission.Role, error) {
	byUser, err := r.GetRolesForUsers(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	return byUser[userID], nil
}

type userRoleRow struct {
	UserID uint
	models.RoleModel
}

func (r *RoleRepositoryImpl) GetRolesForUsers(ctx context.Context, userIDs []uint) (map[uint][]*permission.Role, error) {
	result := make(map[uint][]*permission.Role, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []userRoleRow
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableUserRoles+" ur").
		Select("ur.user_id, r.*").
		Joins("JOIN "+constants.TableRoles+" r ON r.id = ur.role_id").
		Where("ur.user_id IN ?", userIDs).
		Order("r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for users: %w", err)
	}

	for i := range rows {
		role, err := mappers.RoleToDomain(&rows[i].RoleModel)
		if err != nil {
			return nil, err
		}
		result[rows[i].UserID] = append(result[rows[i].UserID], role)
	}
	return result, nil
}

func (r *RoleRepositoryImpl) GetUserIDsByRole(ctx context.Context, roleID uint) ([]uint, error) {
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserRoleModel{}).
		Where("role_id = ?", roleID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get role users: %w", err)
	}
	return ids, nil
}

func rolesToDomain(roleModels []models.RoleModel) ([]*permission.Role, error) {
	roles := make([]*permission.Role, 0, len(roleModels))
	for i := range roleModels {
		role, err := mappers.RoleToDomain(&roleModels[i])
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func permissionsToDomain(permissionModels []models.PermissionModel) ([]*permission.Permission, error) {
	perms := make([]*permission.Permission, 0, len(permissionModels))
	for i := range permissionModels {
		p, err := mappers.PermissionToDomain(&permissionModels[i])
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ permission.PermissionRepository = (*PermissionRepositoryImpl)(nil)

type PermissionRepositoryImpl struct {
	db *gorm.DB
}

func NewPermissionRepository(gdb *gorm.DB) *PermissionRepositoryImpl {
	return &PermissionRepositoryImpl{db: gdb}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *permission.Permission) error {
	model := &models.PermissionModel{
		Resource:    p.Resource().String(),
		Action:      p.Action().String(),
		Description: p.Description(),
		CreatedAt:   p.CreatedAt(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PermissionRepositoryImpl) GetByCode(ctx context.Context, resource, action string) (*permission.Permission, error) {
	var model models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("resource = ? AND action = ?", resource, action).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return mappers.PermissionToDomain(&model)
}

func (r *PermissionRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*permission.Permission, error) {
	if len(ids) == 0 {
		return []*permission.Permission{}, nil
	}

	var permissionModels []models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}
	return permissionsToDomain(permissionModels)
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]*permission.Permission, error) {
	var permissionModels []models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("resource ASC, action ASC").
		Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissionsToDomain(permissionModels)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ support.Repository = (*SupportRepository)(nil)

// SupportRepository persists technicians.
type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(gdb *gorm.DB) *SupportRepository {
	return &SupportRepository{db: gdb}
}

func (r *SupportRepository) Create(ctx context.Context, s *support.Support) error {
	model := mappers.SupportToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create support: %w", err)
	}
	return s.SetID(model.ID)
}

func (r *SupportRepository) Update(ctx context.Context, s *support.Support) error {
	model := mappers.SupportToModel(s)
	err := db.GetTxFromContext(ctx, r.db).Model(&models.SupportModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"email":      model.Email,
			"phone":      model.Phone,
			"specialty":  model.Specialty,
			"updated_at": model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update support: %w", err)
	}
	return nil
}

func (r *SupportRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.SupportModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete support: %w", err)
	}
	return nil
}

func (r *SupportRepository) GetByID(ctx context.Context, id uint) (*support.Support, error) {
	var model models.SupportModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get support: %w", err)
	}
	return mappers.SupportToDomain(&model)
}

func (r *SupportRepository) GetByIDs(ctx context.Context, ids []uint) ([]*support.Support, error) {
	if len(ids) == 0 {
		return []*support.Support{}, nil
	}
	var rows []models.SupportModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get supports: %w", err)
	}
	return mappers.SupportsToDomain(rows)
}

func (r *SupportRepository) GetByEmail(ctx context.Context, email string) (*support.Support, error) {
	var model models.SupportModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get support by email: %w", err)
	}
	return mappers.SupportToDomain(&model)
}

func (r *SupportRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SupportModel{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check support email: %w", err)
	}
	return count > 0, nil
}

func (r *SupportRepository) List(ctx context.Context, filter support.ListFilter) ([]*support.Support, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SupportModel{}).
		Scopes(db.Search(filter.Search, "name", "email", "specialty"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count supports: %w", err)
	}

	var rows []models.SupportModel
	if err := query.Scopes(db.LatestFirst(), db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list supports: %w", err)
	}

	supports, err := mappers.SupportsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return supports, total, nil
}

// ListAll returns every support ordered by name, for selectors and reports.
func (r *SupportRepository) ListAll(ctx context.Context) ([]*support.Support, error) {
	var rows []models.SupportModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list supports: %w", err)
	}
	return mappers.SupportsToDomain(rows)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ customer.Repository = (*CustomerRepository)(nil)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(gdb *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: gdb}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := mappers.CustomerToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := mappers.CustomerToModel(c)
	err := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"company":    model.Company,
			"email":      model.Email,
			"phone":      model.Phone,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.CustomerModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return mappers.CustomerToDomain(&model)
}

func (r *CustomerRepository) GetByIDs(ctx context.Context, ids []uint) ([]*customer.Customer, error) {
	if len(ids) == 0 {
		return []*customer.Customer{}, nil
	}
	var rows []models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return mappers.CustomersToDomain(rows)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return mappers.CustomerToDomain(&model)
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return count > 0, nil
}

func (r *CustomerRepository) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{}).
		Scopes(db.Search(filter.Search, "name", "company", "email"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var rows []models.CustomerModel
	if err := query.Scopes(db.LatestFirst(), db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers, err := mappers.CustomersToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

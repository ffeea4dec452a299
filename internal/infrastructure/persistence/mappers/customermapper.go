package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func CustomerToModel(c *customer.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:        c.ID(),
		Name:      c.Name(),
		Company:   c.Company(),
		Email:     c.Email().String(),
		Phone:     c.Phone(),
		Address:   c.Address(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func CustomerToDomain(model *models.CustomerModel) (*customer.Customer, error) {
	c, err := customer.ReconstructCustomer(model.ID, customer.Profile{
		Name:    model.Name,
		Company: model.Company,
		Email:   model.Email,
		Phone:   model.Phone,
		Address: model.Address,
	}, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct customer (id=%d): %w", model.ID, err)
	}
	return c, nil
}

func CustomersToDomain(customerModels []models.CustomerModel) ([]*customer.Customer, error) {
	out := make([]*customer.Customer, 0, len(customerModels))
	for i := range customerModels {
		c, err := CustomerToDomain(&customerModels[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func SupportToModel(s *support.Support) *models.SupportModel {
	return &models.SupportModel{
		ID:        s.ID(),
		Name:      s.Name(),
		Email:     s.Email().String(),
		Phone:     s.Phone(),
		Specialty: s.Specialty(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func SupportToDomain(model *models.SupportModel) (*support.Support, error) {
	s, err := support.ReconstructSupport(model.ID, support.Profile{
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Specialty: model.Specialty,
	}, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct support (id=%d): %w", model.ID, err)
	}
	return s, nil
}

func SupportsToDomain(supportModels []models.SupportModel) ([]*support.Support, error) {
	out := make([]*support.Support, 0, len(supportModels))
	for i := range supportModels {
		s, err := SupportToDomain(&supportModels[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

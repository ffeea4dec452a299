package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// TicketUsage reports whether tickets still reference a customer.
type TicketUsage interface {
	ExistsByCustomer(ctx context.Context, customerID uint) (bool, error)
}

type CustomerDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResult struct {
	Customers []CustomerDTO `json:"customers"`
	Total     int64         `json:"total"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
}

type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

type SaveCommand struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
}

func (c SaveCommand) profile() customer.Profile {
	return customer.Profile{
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func ToDTO(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
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

type Service struct {
	repo    customer.Repository
	tickets TicketUsage
	logger  logger.Interface
}

func NewService(repo customer.Repository, tickets TicketUsage, logger logger.Interface) *Service {
	return &Service{
		repo:    repo,
		tickets: tickets,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.DefaultPageSize
	}

	customers, total, err := s.repo.List(ctx, customer.ListFilter{
		Search:   strings.TrimSpace(query.Search),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		s.logger.Errorw("failed to list customers", "error", err)
		return nil, errors.NewInternalError("failed to list customers")
	}

	result := &ListResult{
		Customers: make([]CustomerDTO, 0, len(customers)),
		Total:     total,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	for _, c := range customers {
		result.Customers = append(result.Customers, ToDTO(c))
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*CustomerDTO, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToDTO(c)
	return &out, nil
}

func (s *Service) Create(ctx context.Context, cmd SaveCommand) (*CustomerDTO, error) {
	if err := s.ensureEmailAvailable(ctx, cmd.Email, 0); err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(cmd.profile())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		s.logger.Errorw("failed to create customer", "email", c.Email().String(), "error", err)
		return nil, errors.NewInternalError("failed to create customer")
	}

	s.logger.Infow("customer created successfully", "customer_id", c.ID())
	out := ToDTO(c)
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id uint, cmd SaveCommand) (*CustomerDTO, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, cmd.Email, id); err != nil {
		return nil, err
	}

	if err := c.Update(cmd.profile()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		s.logger.Errorw("failed to update customer", "customer_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update customer")
	}

	s.logger.Infow("customer updated successfully", "customer_id", id)
	out := ToDTO(c)
	return &out, nil
}

// Delete refuses to remove a customer while tickets reference it.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	inUse, err := s.tickets.ExistsByCustomer(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to check customer tickets", "customer_id", id, "error", err)
		return errors.NewInternalError("failed to delete customer")
	}
	if inUse {
		return errors.NewConflictError("customer has tickets and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete customer", "customer_id", id, "error", err)
		return errors.NewInternalError("failed to delete customer")
	}

	s.logger.Infow("customer deleted successfully", "customer_id", id)
	return nil
}

func (s *Service) load(ctx context.Context, id uint) (*customer.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get customer", "customer_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get customer")
	}
	if c == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer %d not found", id))
	}
	return c, nil
}

func (s *Service) ensureEmailAvailable(ctx context.Context, email string, excludeID uint) error {
	normalized := sharedvo.NormalizeEmail(email)
	if normalized == "" {
		return nil
	}
	exists, err := s.repo.ExistsByEmail(ctx, normalized, excludeID)
	if err != nil {
		s.logger.Errorw("failed to check customer email", "error", err)
		return errors.NewInternalError("failed to save customer")
	}
	if exists {
		return emailTaken()
	}
	return nil
}

func emailTaken() error {
	return errors.NewFieldValidationError(map[string]string{"email": "email is already taken"})
}

package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// TicketUsage reports whether tickets are still assigned to a technician.
type TicketUsage interface {
	ExistsBySupport(ctx context.Context, supportID uint) (bool, error)
}

type SupportDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResult struct {
	Supports []SupportDTO `json:"supports"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type ListQuery struct {
	Search   string
	Page     int
	PageSize int
	// All skips pagination; used to fill assignment pickers.
	All bool
}

type SaveCommand struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
}

func ToDTO(s *support.Support) SupportDTO {
	return SupportDTO{
		ID:        s.ID(),
		Name:      s.Name(),
		Email:     s.Email().String(),
		Phone:     s.Phone(),
		Specialty: s.Specialty(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

type Service struct {
	repo    support.Repository
	tickets TicketUsage
	logger  logger.Interface
}

func NewService(repo support.Repository, tickets TicketUsage, logger logger.Interface) *Service {
	return &Service{repo: repo, tickets: tickets, logger: logger}
}

func (s *Service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	var (
		supports []*support.Support
		total    int64
		err      error
	)

	if query.All {
		supports, err = s.repo.ListAll(ctx)
		total = int64(len(supports))
		query.Page, query.PageSize = 1, len(supports)
	} else {
		if query.Page < 1 {
			query.Page = constants.DefaultPage
		}
		if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
			query.PageSize = constants.DefaultPageSize
		}
		supports, total, err = s.repo.List(ctx, support.ListFilter{
			Search:   strings.TrimSpace(query.Search),
			Page:     query.Page,
			PageSize: query.PageSize,
		})
	}
	if err != nil {
		s.logger.Errorw("failed to list supports", "error", err)
		return nil, errors.NewInternalError("failed to list supports")
	}

	result := &ListResult{
		Supports: make([]SupportDTO, 0, len(supports)),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	for _, sp := range supports {
		result.Supports = append(result.Supports, ToDTO(sp))
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*SupportDTO, error) {
	sp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToDTO(sp)
	return &out, nil
}

func (s *Service) Create(ctx context.Context, cmd SaveCommand) (*SupportDTO, error) {
	if err := s.ensureEmailAvailable(ctx, cmd.Email, 0); err != nil {
		return nil, err
	}

	sp, err := support.NewSupport(support.Profile(cmd))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		s.logger.Errorw("failed to create support", "email", sp.Email().String(), "error", err)
		return nil, errors.NewInternalError("failed to create support")
	}

	s.logger.Infow("support created successfully", "support_id", sp.ID())
	out := ToDTO(sp)
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id uint, cmd SaveCommand) (*SupportDTO, error) {
	sp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, cmd.Email, id); err != nil {
		return nil, err
	}

	if err := sp.Update(support.Profile(cmd)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Update(ctx, sp); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		s.logger.Errorw("failed to update support", "support_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update support")
	}

	s.logger.Infow("support updated successfully", "support_id", id)
	out := ToDTO(sp)
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	inUse, err := s.tickets.ExistsBySupport(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to check support tickets", "support_id", id, "error", err)
		return errors.NewInternalError("failed to delete support")
	}
	if inUse {
		return errors.NewConflictError("support has assigned tickets and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete support", "support_id", id, "error", err)
		return errors.NewInternalError("failed to delete support")
	}

	s.logger.Infow("support deleted successfully", "support_id", id)
	return nil
}

func (s *Service) load(ctx context.Context, id uint) (*support.Support, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get support", "support_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get support")
	}
	if sp == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("support %d not found", id))
	}
	return sp, nil
}

func (s *Service) ensureEmailAvailable(ctx context.Context, email string, excludeID uint) error {
	normalized := sharedvo.NormalizeEmail(email)
	if normalized == "" {
		return nil
	}
	exists, err := s.repo.ExistsByEmail(ctx, normalized, excludeID)
	if err != nil {
		s.logger.Errorw("failed to check support email", "error", err)
		return errors.NewInternalError("failed to save support")
	}
	if exists {
		return emailTaken()
	}
	return nil
}

func emailTaken() error {
	return errors.NewFieldValidationError(map[string]string{"email": "email is already taken"})
}

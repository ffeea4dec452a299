package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	Actor      Actor
	Status     string
	Subject    string
	CustomerID *uint
	SupportID  *uint
	Search     string
	Page       int
	PageSize   int
}

type ListTicketsResult struct {
	Tickets  []dto.TicketDTO `json:"tickets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListTicketsUseCase struct {
	ticketRepo   ticket.TicketRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	resolver     *ScopeResolver
	logger       logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	resolver *ScopeResolver,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo:   ticketRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	scope, err := uc.resolver.Resolve(ctx, query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to resolve ticket scope", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}
	filter.Scope = scope

	result := &ListTicketsResult{
		Tickets:  []dto.TicketDTO{},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if scope.IsEmpty() {
		return result, nil
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	customers, supports, err := partyLookup{uc.customerRepo, uc.supportRepo}.load(ctx, tickets)
	if err != nil {
		uc.logger.Errorw("failed to load ticket parties", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	result.Tickets = dto.ToTicketDTOs(tickets, customers, supports)
	result.Total = total
	return result, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		CustomerID: query.CustomerID,
		SupportID:  query.SupportID,
		Search:     strings.TrimSpace(query.Search),
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return filter, errors.NewFieldValidationError(map[string]string{"status": "status is invalid"})
		}
		filter.Status = &status
	}
	if query.Subject != "" {
		subject, err := vo.NewSubject(query.Subject)
		if err != nil {
			return filter, errors.NewFieldValidationError(map[string]string{"subject": "subject is invalid"})
		}
		filter.Subject = &subject
	}
	return filter, nil
}

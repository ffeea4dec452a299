package usecases

import (
	"context"
	"sort"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const recentTicketsLimit = 5

type GetTicketStatsQuery struct {
	Actor          Actor
	AcceptLanguage string
}

type GetTicketStatsUseCase struct {
	ticketRepo   ticket.TicketRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	resolver     *ScopeResolver
	catalog      *i18n.Catalog
	logger       logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	resolver *ScopeResolver,
	catalog *i18n.Catalog,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo:   ticketRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		resolver:     resolver,
		catalog:      catalog,
		logger:       logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.TicketStatsDTO, error) {
	actor, err := uc.resolver.Current(ctx, query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load current user", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket statistics")
	}
	query.Actor = actor

	scope, err := uc.resolver.Resolve(ctx, query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to resolve ticket scope", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket statistics")
	}

	tr := uc.catalog.Translator(query.AcceptLanguage)

	stats := &ticket.Stats{
		ByStatus:  map[vo.TicketStatus]int64{},
		BySubject: map[vo.Subject]int64{},
		BySupport: map[uint]int64{},
	}
	var recent []*ticket.Ticket
	if !scope.IsEmpty() {
		if stats, err = uc.ticketRepo.Stats(ctx, scope); err != nil {
			uc.logger.Errorw("failed to aggregate ticket statistics", "error", err)
			return nil, errors.NewInternalError("failed to get ticket statistics")
		}
		recent, _, err = uc.ticketRepo.List(ctx, ticket.TicketFilter{Scope: scope, Page: 1, PageSize: recentTicketsLimit})
		if err != nil {
			uc.logger.Errorw("failed to load recent tickets", "error", err)
			return nil, errors.NewInternalError("failed to get ticket statistics")
		}
	}

	customers, supports, err := partyLookup{uc.customerRepo, uc.supportRepo}.load(ctx, recent)
	if err != nil {
		uc.logger.Errorw("failed to load ticket parties", "error", err)
		return nil, errors.NewInternalError("failed to get ticket statistics")
	}

	result := &dto.TicketStatsDTO{
		Total:      stats.Total,
		Unassigned: stats.Unassigned,
		ByStatus:   make([]dto.CountDTO, 0, len(vo.AllStatuses())),
		BySubject:  make([]dto.CountDTO, 0, len(vo.AllSubjects())),
		Recent:     dto.ToTicketDTOs(recent, customers, supports),
	}
	for _, s := range vo.AllStatuses() {
		result.ByStatus = append(result.ByStatus, dto.CountDTO{Key: s.String(), Label: tr.Status(s.String()), Count: stats.ByStatus[s]})
	}
	for _, s := range vo.AllSubjects() {
		result.BySubject = append(result.BySubject, dto.CountDTO{Key: s.String(), Label: tr.Subject(s.String()), Count: stats.BySubject[s]})
	}

	if query.Actor.IsAdmin() {
		load, err := uc.supportLoad(ctx, stats.BySupport)
		if err != nil {
			uc.logger.Errorw("failed to load technician workload", "error", err)
			return nil, errors.NewInternalError("failed to get ticket statistics")
		}
		result.BySupport = load
	}

	return result, nil
}

// supportLoad lists every technician with their ticket count, busiest first.
func (uc *GetTicketStatsUseCase) supportLoad(ctx context.Context, counts map[uint]int64) ([]dto.SupportLoadDTO, error) {
	all, err := uc.supportRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	load := make([]dto.SupportLoadDTO, 0, len(all))
	for _, s := range all {
		load = append(load, dto.SupportLoadDTO{SupportID: s.ID(), Name: s.Name(), Count: counts[s.ID()]})
	}
	sort.SliceStable(load, func(i, j int) bool {
		if load[i].Count != load[j].Count {
			return load[i].Count > load[j].Count
		}
		return load[i].Name < load[j].Name
	})
	return load, nil
}

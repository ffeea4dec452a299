package usecases

import (
	"context"
	"fmt"
	"strconv"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var exportColumns = []string{
	"id", "subject", "description", "customer", "support",
	"brand", "model", "serial_number", "category", "area",
	"status", "created_at", "closed_at",
}

// ExportTicketsCommand selects tickets by IDs, or every ticket in scope when All is set.
type ExportTicketsCommand struct {
	Actor          Actor
	IDs            []uint
	All            bool
	AcceptLanguage string
}

type ExportTicketsResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

type ExportTicketsUseCase struct {
	ticketRepo   ticket.TicketRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	resolver     *ScopeResolver
	encoder      TableEncoder
	catalog      *i18n.Catalog
	logger       logger.Interface
}

func NewExportTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	resolver *ScopeResolver,
	encoder TableEncoder,
	catalog *i18n.Catalog,
	logger logger.Interface,
) *ExportTicketsUseCase {
	return &ExportTicketsUseCase{
		ticketRepo:   ticketRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		resolver:     resolver,
		encoder:      encoder,
		catalog:      catalog,
		logger:       logger,
	}
}

func (uc *ExportTicketsUseCase) Execute(ctx context.Context, cmd ExportTicketsCommand) (*ExportTicketsResult, error) {
	uc.logger.Infow("executing export tickets use case", "user_id", cmd.Actor.UserID, "all", cmd.All, "ids", len(cmd.IDs))

	if !cmd.All && len(cmd.IDs) == 0 {
		return nil, errors.NewFieldValidationError(map[string]string{"ids": "select at least one ticket or export all"})
	}

	scope, err := uc.resolver.Resolve(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to resolve ticket scope", "user_id", cmd.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to export tickets")
	}

	var tickets []*ticket.Ticket
	if !scope.IsEmpty() {
		var ids []uint
		if !cmd.All {
			ids = cmd.IDs
		}
		tickets, err = uc.ticketRepo.ListForExport(ctx, scope, ids)
		if err != nil {
			uc.logger.Errorw("failed to load tickets for export", "error", err)
			return nil, errors.NewInternalError("failed to export tickets")
		}
	}

	customers, supports, err := partyLookup{uc.customerRepo, uc.supportRepo}.load(ctx, tickets)
	if err != nil {
		uc.logger.Errorw("failed to load ticket parties for export", "error", err)
		return nil, errors.NewInternalError("failed to export tickets")
	}

	tr := uc.catalog.Translator(cmd.AcceptLanguage)
	records := make([][]string, 0, len(tickets)+1)
	records = append(records, exportHeader(tr))
	for _, t := range tickets {
		records = append(records, exportRow(t, customers, supports, tr))
	}

	data, err := uc.encoder.Encode(records)
	if err != nil {
		uc.logger.Errorw("failed to encode ticket export", "error", err)
		return nil, errors.NewInternalError("failed to export tickets")
	}

	filename := fmt.Sprintf("tickets_%s.%s",
		biztime.FormatInBizTimezone(biztime.NowUTC(), constants.ExportFilenameLayout),
		uc.encoder.Extension(),
	)

	uc.logger.Infow("tickets exported successfully", "rows", len(tickets), "language", tr.Language())

	return &ExportTicketsResult{
		Filename:    filename,
		ContentType: uc.encoder.ContentType(),
		Data:        data,
		Rows:        len(tickets),
	}, nil
}

func exportHeader(tr *i18n.Translator) []string {
	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = tr.Column(col)
	}
	return header
}

func exportRow(t *ticket.Ticket, customers map[uint]*customer.Customer, supports map[uint]*support.Support, tr *i18n.Translator) []string {
	customerName := ""
	if c := customers[t.CustomerID()]; c != nil {
		customerName = c.Name()
	}
	supportName := ""
	if sid := t.SupportID(); sid != nil {
		if s := supports[*sid]; s != nil {
			supportName = s.Name()
		}
	}

	eq := t.Equipment()
	return []string{
		strconv.FormatUint(uint64(t.ID()), 10),
		tr.Subject(t.Subject().String()),
		t.Description(),
		customerName,
		supportName,
		eq.Brand,
		eq.Model,
		eq.SerialNumber,
		eq.Category,
		eq.Area,
		tr.Status(t.Status().String()),
		biztime.FormatInBizTimezone(t.CreatedAt(), constants.ExportTimeLayout),
		biztime.FormatOptional(t.ClosedAt(), constants.ExportTimeLayout),
	}
}

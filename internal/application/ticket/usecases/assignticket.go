package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AssignTicketCommand sets the ticket's technician. A nil SupportID unassigns it.
type AssignTicketCommand struct {
	Actor     Actor
	TicketID  uint
	SupportID *uint
	Language  string
}

type AssignTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	resolver     *ScopeResolver
	txManager    TransactionManager
	notifier     Notifier
	logger       logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	resolver *ScopeResolver,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		resolver:     resolver,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "support_id", supportIDValue(cmd.SupportID))

	actor, err := uc.resolver.Current(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load current user", "user_id", cmd.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}
	cmd.Actor = actor
	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can assign tickets")
	}

	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, cmd.Actor, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}

	var sup *support.Support
	if cmd.SupportID != nil {
		sup, err = uc.supportRepo.GetByID(ctx, *cmd.SupportID)
		if err != nil {
			uc.logger.Errorw("failed to load support", "support_id", *cmd.SupportID, "error", err)
			return nil, errors.NewInternalError("failed to assign ticket")
		}
		if sup == nil {
			return nil, errors.NewFieldValidationError(map[string]string{"support_id": "support not found"})
		}
	}

	previous := t.SupportID()
	changed, err := t.AssignSupport(cmd.SupportID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	cust, err := uc.customerRepo.GetByID(ctx, t.CustomerID())
	if err != nil {
		uc.logger.Warnw("failed to load customer for ticket", "ticket_id", t.ID(), "error", err)
	}

	if changed {
		payload := map[string]any{
			"from": supportIDValue(previous),
			"to":   supportIDValue(cmd.SupportID),
		}
		if sup != nil {
			payload["support_name"] = sup.Name()
		}

		err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.ticketRepo.Update(txCtx, t); err != nil {
				return err
			}
			return recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityAssigned, payload)
		})
		if err != nil {
			uc.logger.Errorw("failed to assign ticket", "ticket_id", t.ID(), "error", err)
			return nil, errors.NewInternalError("failed to assign ticket")
		}

		uc.logger.Infow("ticket assigned successfully", "ticket_id", t.ID(), "support_id", supportIDValue(cmd.SupportID))
		notifyAssigned(ctx, uc.notifier, uc.logger, t, sup, cust, cmd.Language)
	}

	result := dto.ToTicketDTO(t)
	result.Customer = dto.ToPartyFromCustomer(cust)
	result.Support = dto.ToPartyFromSupport(sup)
	return &result, nil
}

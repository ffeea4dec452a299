package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	Actor    Actor
	TicketID uint
	Status   string
	Language string
}

type ChangeStatusUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	customerRepo customer.Repository
	resolver     *ScopeResolver
	txManager    TransactionManager
	notifier     Notifier
	logger       logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	customerRepo customer.Repository,
	resolver *ScopeResolver,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		resolver:     resolver,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.Status)

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"status": "status is invalid"})
	}

	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, cmd.Actor, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to change ticket status")
	}

	oldStatus := t.Status()
	changed, err := t.ChangeStatus(newStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if changed {
		err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.ticketRepo.Update(txCtx, t); err != nil {
				return err
			}
			return recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityStatusChanged, map[string]any{
				"from": oldStatus.String(),
				"to":   newStatus.String(),
			})
		})
		if err != nil {
			uc.logger.Errorw("failed to update ticket status", "ticket_id", t.ID(), "error", err)
			return nil, errors.NewInternalError("failed to change ticket status")
		}

		uc.logger.Infow("ticket status changed successfully",
			"ticket_id", t.ID(),
			"old_status", oldStatus,
			"new_status", newStatus,
		)
	}

	cust, err := uc.customerRepo.GetByID(ctx, t.CustomerID())
	if err != nil {
		uc.logger.Warnw("failed to load customer for ticket", "ticket_id", t.ID(), "error", err)
	}
	if changed && newStatus.IsClosed() {
		notifyClosed(ctx, uc.notifier, uc.logger, t, cust, cmd.Language)
	}

	result := dto.ToTicketDTO(t)
	result.Customer = dto.ToPartyFromCustomer(cust)
	return &result, nil
}

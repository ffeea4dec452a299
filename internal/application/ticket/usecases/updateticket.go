package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	Actor       Actor
	TicketID    uint
	Subject     string
	Description string
	Equipment   ticket.Equipment
	Status      *string
	// UpdateSupport marks SupportID as present; a nil SupportID then clears the assignment.
	UpdateSupport bool
	SupportID     *uint
	Documents     []FileUpload
	Language      string
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	documentRepo ticket.DocumentRepository
	activityRepo ticket.ActivityRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	resolver     *ScopeResolver
	attachments  *AttachmentStore
	txManager    TransactionManager
	notifier     Notifier
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	documentRepo ticket.DocumentRepository,
	activityRepo ticket.ActivityRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	resolver *ScopeResolver,
	attachments *AttachmentStore,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		documentRepo: documentRepo,
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		resolver:     resolver,
		attachments:  attachments,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	actor, err := uc.resolver.Current(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load current user", "user_id", cmd.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}
	cmd.Actor = actor

	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, cmd.Actor, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	subject, err := vo.NewSubject(cmd.Subject)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"subject": "subject is invalid"})
	}

	var newStatus *vo.TicketStatus
	if cmd.Status != nil {
		s, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewFieldValidationError(map[string]string{"status": "status is invalid"})
		}
		newStatus = &s
	}

	var sup *support.Support
	if cmd.UpdateSupport {
		if !cmd.Actor.IsAdmin() {
			return nil, errors.NewForbiddenError("only administrators can assign tickets")
		}
		if cmd.SupportID != nil {
			sup, err = uc.supportRepo.GetByID(ctx, *cmd.SupportID)
			if err != nil {
				uc.logger.Errorw("failed to load support", "support_id", *cmd.SupportID, "error", err)
				return nil, errors.NewInternalError("failed to update ticket")
			}
			if sup == nil {
				return nil, errors.NewFieldValidationError(map[string]string{"support_id": "support not found"})
			}
		}
	}

	if err := uc.attachments.Validate("documents", cmd.Documents); err != nil {
		return nil, err
	}

	previousStatus := t.Status()
	previousSupport := t.SupportID()

	detailsChanged, err := t.UpdateDetails(subject, cmd.Description, cmd.Equipment)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	statusChanged := false
	if newStatus != nil {
		if statusChanged, err = t.ChangeStatus(*newStatus); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	supportChanged := false
	if cmd.UpdateSupport {
		if supportChanged, err = t.AssignSupport(cmd.SupportID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	var stored []ticket.StoredFile
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if detailsChanged || statusChanged || supportChanged {
			if err := uc.ticketRepo.Update(txCtx, t); err != nil {
				return err
			}
		}
		if detailsChanged {
			if err := recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityUpdated, nil); err != nil {
				return err
			}
		}
		if statusChanged {
			if err := recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityStatusChanged, map[string]any{
				"from": previousStatus.String(),
				"to":   t.Status().String(),
			}); err != nil {
				return err
			}
		}
		if supportChanged {
			payload := map[string]any{
				"from": supportIDValue(previousSupport),
				"to":   supportIDValue(t.SupportID()),
			}
			if sup != nil {
				payload["support_name"] = sup.Name()
			}
			if err := recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityAssigned, payload); err != nil {
				return err
			}
		}

		var err error
		stored, err = uc.attachments.Store(txCtx, t.ID(), cmd.Documents)
		if err != nil {
			return err
		}
		return attachDocuments(txCtx, uc.documentRepo, uc.activityRepo, t.ID(), cmd.Actor, stored)
	})
	if err != nil {
		uc.attachments.Remove(ctx, stored)
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", t.ID(),
		"details_changed", detailsChanged,
		"status_changed", statusChanged,
		"support_changed", supportChanged,
		"documents", len(stored),
	)

	cust, err := uc.customerRepo.GetByID(ctx, t.CustomerID())
	if err != nil {
		uc.logger.Warnw("failed to load customer for ticket", "ticket_id", t.ID(), "error", err)
	}
	if sup == nil && t.SupportID() != nil {
		if sup, err = uc.supportRepo.GetByID(ctx, *t.SupportID()); err != nil {
			uc.logger.Warnw("failed to load support for ticket", "ticket_id", t.ID(), "error", err)
		}
	}

	if supportChanged {
		notifyAssigned(ctx, uc.notifier, uc.logger, t, sup, cust, cmd.Language)
	}
	if statusChanged && t.Status().IsClosed() {
		notifyClosed(ctx, uc.notifier, uc.logger, t, cust, cmd.Language)
	}

	result := dto.ToTicketDTO(t)
	result.Customer = dto.ToPartyFromCustomer(cust)
	result.Support = dto.ToPartyFromSupport(sup)
	return &result, nil
}

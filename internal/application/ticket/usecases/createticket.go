package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/authorization"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor       Actor
	Subject     string
	Description string
	Equipment   ticket.Equipment
	CustomerID  *uint
	SupportID   *uint
	Documents   []FileUpload
	Language    string
}

type CreateTicketUseCase struct {
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

func NewCreateTicketUseCase(
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
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
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

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "user_id", cmd.Actor.UserID, "subject", cmd.Subject)

	subject, err := vo.NewSubject(cmd.Subject)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"subject": "subject is invalid"})
	}

	actor, err := uc.resolver.Current(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load current user", "user_id", cmd.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}
	cmd.Actor = actor

	cust, err := uc.resolveCustomer(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var sup *support.Support
	if cmd.SupportID != nil {
		if !cmd.Actor.IsAdmin() {
			return nil, errors.NewForbiddenError("only administrators can assign tickets")
		}
		sup, err = uc.supportRepo.GetByID(ctx, *cmd.SupportID)
		if err != nil {
			uc.logger.Errorw("failed to load support", "support_id", *cmd.SupportID, "error", err)
			return nil, errors.NewInternalError("failed to create ticket")
		}
		if sup == nil {
			return nil, errors.NewFieldValidationError(map[string]string{"support_id": "support not found"})
		}
	}

	if err := uc.attachments.Validate("documents", cmd.Documents); err != nil {
		return nil, err
	}

	newTicket, err := ticket.NewTicket(subject, cmd.Description, cmd.Equipment, cust.ID(), cmd.Actor.userIDPtr())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if sup != nil {
		if _, err := newTicket.AssignSupport(cmd.SupportID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	var stored []ticket.StoredFile
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return err
		}
		if err := recordActivity(txCtx, uc.activityRepo, newTicket.ID(), cmd.Actor, ticket.ActivityCreated, map[string]any{
			"subject": subject.String(),
		}); err != nil {
			return err
		}
		if sup != nil {
			if err := recordActivity(txCtx, uc.activityRepo, newTicket.ID(), cmd.Actor, ticket.ActivityAssigned, map[string]any{
				"from":         nil,
				"to":           sup.ID(),
				"support_name": sup.Name(),
			}); err != nil {
				return err
			}
		}

		stored, err = uc.attachments.Store(txCtx, newTicket.ID(), cmd.Documents)
		if err != nil {
			return err
		}
		return attachDocuments(txCtx, uc.documentRepo, uc.activityRepo, newTicket.ID(), cmd.Actor, stored)
	})
	if err != nil {
		uc.attachments.Remove(ctx, stored)
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create ticket", "customer_id", cust.ID(), "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "customer_id", cust.ID())

	notifyAssigned(ctx, uc.notifier, uc.logger, newTicket, sup, cust, cmd.Language)

	result := dto.ToTicketDTO(newTicket)
	result.Customer = dto.ToPartyFromCustomer(cust)
	result.Support = dto.ToPartyFromSupport(sup)
	return &result, nil
}

// resolveCustomer forces the linked customer for customer-role users and
// requires an existing customer_id from everyone else.
func (uc *CreateTicketUseCase) resolveCustomer(ctx context.Context, cmd CreateTicketCommand) (*customer.Customer, error) {
	role, ok := authorization.EffectiveRole(cmd.Actor.Roles)
	if !ok {
		return nil, errors.NewForbiddenError("you are not allowed to create tickets")
	}

	if role == authorization.RoleCustomer {
		cust, err := uc.resolver.LinkedCustomer(ctx, cmd.Actor)
		if err != nil {
			uc.logger.Errorw("failed to resolve linked customer", "user_id", cmd.Actor.UserID, "error", err)
			return nil, errors.NewInternalError("failed to create ticket")
		}
		if cust == nil {
			return nil, errors.NewForbiddenError("no customer profile is linked to this account")
		}
		return cust, nil
	}

	if cmd.CustomerID == nil || *cmd.CustomerID == 0 {
		return nil, errors.NewFieldValidationError(map[string]string{"customer_id": "customer_id is required"})
	}
	cust, err := uc.customerRepo.GetByID(ctx, *cmd.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to load customer", "customer_id", *cmd.CustomerID, "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}
	if cust == nil {
		return nil, errors.NewFieldValidationError(map[string]string{"customer_id": "customer not found"})
	}
	return cust, nil
}

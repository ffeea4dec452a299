package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    Actor
	TicketID uint
}

type DeleteTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	documentRepo ticket.DocumentRepository
	commentRepo  ticket.CommentRepository
	activityRepo ticket.ActivityRepository
	resolver     *ScopeResolver
	attachments  *AttachmentStore
	txManager    TransactionManager
	logger       logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	documentRepo ticket.DocumentRepository,
	commentRepo ticket.CommentRepository,
	activityRepo ticket.ActivityRepository,
	resolver *ScopeResolver,
	attachments *AttachmentStore,
	txManager TransactionManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:   ticketRepo,
		documentRepo: documentRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		resolver:     resolver,
		attachments:  attachments,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	actor, err := uc.resolver.Current(ctx, cmd.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load current user", "user_id", cmd.Actor.UserID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}
	cmd.Actor = actor
	if !cmd.Actor.IsAdmin() {
		return errors.NewForbiddenError("only administrators can delete tickets")
	}

	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, cmd.Actor, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	files, err := uc.collectFiles(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket files", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		if err := uc.documentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		if err := uc.activityRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	uc.attachments.Remove(ctx, files)

	uc.logger.Infow("ticket deleted successfully", "ticket_id", t.ID(), "files_removed", len(files))
	return nil
}

func (uc *DeleteTicketUseCase) collectFiles(ctx context.Context, ticketID uint) ([]ticket.StoredFile, error) {
	docs, err := uc.documentRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	attachments, err := uc.commentRepo.ListAttachmentsByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	files := make([]ticket.StoredFile, 0, len(docs)+len(attachments))
	for _, d := range docs {
		files = append(files, d.File())
	}
	for _, a := range attachments {
		files = append(files, a.File())
	}
	return files, nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils/logutil"
)

type AddCommentCommand struct {
	Actor       Actor
	TicketID    uint
	Body        string
	Attachments []FileUpload
}

type AddCommentUseCase struct {
	ticketRepo   ticket.TicketRepository
	commentRepo  ticket.CommentRepository
	activityRepo ticket.ActivityRepository
	userRepo     user.Repository
	resolver     *ScopeResolver
	attachments  *AttachmentStore
	txManager    TransactionManager
	renderer     MarkdownRenderer
	logger       logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	activityRepo ticket.ActivityRepository,
	userRepo user.Repository,
	resolver *ScopeResolver,
	attachments *AttachmentStore,
	txManager TransactionManager,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		resolver:     resolver,
		attachments:  attachments,
		txManager:    txManager,
		renderer:     renderer,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case",
		"ticket_id", cmd.TicketID,
		"user_id", cmd.Actor.UserID,
		"body", logutil.Truncate(cmd.Body, 80),
	)

	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, cmd.Actor, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to add comment")
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Body)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"body": err.Error()})
	}

	if err := uc.attachments.Validate("attachments", cmd.Attachments); err != nil {
		return nil, err
	}

	var stored []ticket.StoredFile
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		stored, err = uc.attachments.Store(txCtx, t.ID(), cmd.Attachments)
		if err != nil {
			return err
		}
		for _, f := range stored {
			if err := comment.Attach(f); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}
		return recordActivity(txCtx, uc.activityRepo, t.ID(), cmd.Actor, ticket.ActivityCommentAdded, map[string]any{
			"comment_id":  comment.ID(),
			"attachments": len(stored),
		})
	})
	if err != nil {
		uc.attachments.Remove(ctx, stored)
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to add comment", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to add comment")
	}

	uc.logger.Infow("comment added successfully", "ticket_id", t.ID(), "comment_id", comment.ID(), "attachments", len(stored))

	authorName := ""
	author, err := uc.userRepo.GetByID(ctx, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Warnw("failed to load comment author", "user_id", cmd.Actor.UserID, "error", err)
	} else if author != nil {
		authorName = author.Name()
	}

	result := toCommentDTO(comment, authorName, uc.renderer, uc.logger)
	return &result, nil
}

// toCommentDTO renders the comment body; a rendering failure leaves body_html empty.
func toCommentDTO(c *ticket.Comment, authorName string, renderer MarkdownRenderer, log logger.Interface) dto.CommentDTO {
	out := dto.CommentDTO{
		ID:          c.ID(),
		UserID:      c.UserID(),
		AuthorName:  authorName,
		Body:        c.Body(),
		Attachments: make([]dto.FileDTO, 0, len(c.Attachments())),
		CreatedAt:   c.CreatedAt(),
	}
	if renderer != nil {
		html, err := renderer.Render(c.Body())
		if err != nil {
			log.Warnw("failed to render comment body", "comment_id", c.ID(), "error", err)
		} else {
			out.BodyHTML = html
		}
	}
	for _, a := range c.Attachments() {
		out.Attachments = append(out.Attachments, dto.ToAttachmentDTO(a))
	}
	return out
}

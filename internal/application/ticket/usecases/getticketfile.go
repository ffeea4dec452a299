package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// GetTicketFileQuery addresses either a ticket document (DocumentID) or a
// comment attachment (CommentID and AttachmentID).
type GetTicketFileQuery struct {
	Actor        Actor
	TicketID     uint
	DocumentID   uint
	CommentID    uint
	AttachmentID uint
}

// FileContent is an open stored file. Callers must close Reader.
type FileContent struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.ReadCloser
}

type GetTicketFileUseCase struct {
	ticketRepo   ticket.TicketRepository
	documentRepo ticket.DocumentRepository
	commentRepo  ticket.CommentRepository
	resolver     *ScopeResolver
	attachments  *AttachmentStore
	logger       logger.Interface
}

func NewGetTicketFileUseCase(
	ticketRepo ticket.TicketRepository,
	documentRepo ticket.DocumentRepository,
	commentRepo ticket.CommentRepository,
	resolver *ScopeResolver,
	attachments *AttachmentStore,
	logger logger.Interface,
) *GetTicketFileUseCase {
	return &GetTicketFileUseCase{
		ticketRepo:   ticketRepo,
		documentRepo: documentRepo,
		commentRepo:  commentRepo,
		resolver:     resolver,
		attachments:  attachments,
		logger:       logger,
	}
}

func (uc *GetTicketFileUseCase) Execute(ctx context.Context, query GetTicketFileQuery) (*FileContent, error) {
	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, query.Actor, query.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get file")
	}

	file, err := uc.lookup(ctx, t.ID(), query)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load file record", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get file")
	}

	rc, err := uc.attachments.Open(ctx, file.StorageKey)
	if err != nil {
		uc.logger.Errorw("failed to open stored file", "ticket_id", t.ID(), "key", file.StorageKey, "error", err)
		return nil, errors.NewNotFoundError("file not found")
	}

	return &FileContent{
		Name:        file.OriginalName,
		ContentType: file.ContentType,
		Size:        file.Size,
		Reader:      rc,
	}, nil
}

func (uc *GetTicketFileUseCase) lookup(ctx context.Context, ticketID uint, query GetTicketFileQuery) (ticket.StoredFile, error) {
	if query.DocumentID != 0 {
		doc, err := uc.documentRepo.GetByID(ctx, query.DocumentID)
		if err != nil {
			return ticket.StoredFile{}, fmt.Errorf("load document %d: %w", query.DocumentID, err)
		}
		if doc == nil || doc.TicketID() != ticketID {
			return ticket.StoredFile{}, errors.NewNotFoundError("document not found")
		}
		return doc.File(), nil
	}

	att, err := uc.commentRepo.GetAttachment(ctx, ticketID, query.CommentID, query.AttachmentID)
	if err != nil {
		return ticket.StoredFile{}, fmt.Errorf("load attachment %d: %w", query.AttachmentID, err)
	}
	if att == nil {
		return ticket.StoredFile{}, errors.NewNotFoundError("attachment not found")
	}
	return att.File(), nil
}

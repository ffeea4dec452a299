package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ ticket.CommentRepository = (*TicketCommentRepository)(nil)

// TicketCommentRepository stores comments and their attachments together.
type TicketCommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketCommentRepository(gdb *gorm.DB) *TicketCommentRepository {
	return &TicketCommentRepository{db: gdb, mapper: mappers.NewTicketMapper()}
}

func (r *TicketCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.TicketCommentModel{
		TicketID:  c.TicketID(),
		UserID:    c.UserID(),
		Body:      c.Body(),
		CreatedAt: c.CreatedAt(),
	}
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	if err := c.SetID(model.ID); err != nil {
		return err
	}

	for _, att := range c.Attachments() {
		attModel := r.mapper.AttachmentToModel(att)
		if err := tx.Create(attModel).Error; err != nil {
			return fmt.Errorf("failed to save comment attachment: %w", err)
		}
		if err := att.SetID(attModel.ID); err != nil {
			return err
		}
	}
	return nil
}

// ListByTicket returns comments oldest first with attachments loaded in one query.
func (r *TicketCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketCommentModel
	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if len(rows) == 0 {
		return []*ticket.Comment{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var attRows []models.TicketCommentAttachmentModel
	if err := tx.Where("comment_id IN ?", ids).Order("id ASC").Find(&attRows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comment attachments: %w", err)
	}
	byComment := make(map[uint][]models.TicketCommentAttachmentModel, len(rows))
	for _, a := range attRows {
		byComment[a.CommentID] = append(byComment[a.CommentID], a)
	}

	comments := make([]*ticket.Comment, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.CommentToDomain(&rows[i], byComment[rows[i].ID])
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// GetAttachment only matches when the attachment belongs to commentID on ticketID.
func (r *TicketCommentRepository) GetAttachment(ctx context.Context, ticketID, commentID, attachmentID uint) (*ticket.CommentAttachment, error) {
	var model models.TicketCommentAttachmentModel
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableTicketCommentAttachments+" a").
		Select("a.*").
		Joins("JOIN "+constants.TableTicketComments+" c ON c.id = a.comment_id").
		Where("a.id = ? AND a.comment_id = ? AND c.ticket_id = ?", attachmentID, commentID, ticketID).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment attachment: %w", err)
	}
	return r.mapper.AttachmentToDomain(&model), nil
}

func (r *TicketCommentRepository) ListAttachmentsByTicket(ctx context.Context, ticketID uint) ([]*ticket.CommentAttachment, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketCommentAttachmentModel
	err := tx.Where("comment_id IN (?)",
		tx.Model(&models.TicketCommentModel{}).Select("id").Where("ticket_id = ?", ticketID),
	).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket attachments: %w", err)
	}

	out := make([]*ticket.CommentAttachment, 0, len(rows))
	for i := range rows {
		out = append(out, r.mapper.AttachmentToDomain(&rows[i]))
	}
	return out, nil
}

func (r *TicketCommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("comment_id IN (?)",
		tx.Model(&models.TicketCommentModel{}).Select("id").Where("ticket_id = ?", ticketID),
	).Delete(&models.TicketCommentAttachmentModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete comment attachments: %w", err)
	}

	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.TicketCommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ ticket.DocumentRepository = (*TicketDocumentRepository)(nil)

type TicketDocumentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketDocumentRepository(gdb *gorm.DB) *TicketDocumentRepository {
	return &TicketDocumentRepository{db: gdb, mapper: mappers.NewTicketMapper()}
}

func (r *TicketDocumentRepository) Create(ctx context.Context, doc *ticket.Document) error {
	model := r.mapper.DocumentToModel(doc)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket document: %w", err)
	}
	return doc.SetID(model.ID)
}

func (r *TicketDocumentRepository) GetByID(ctx context.Context, id uint) (*ticket.Document, error) {
	var model models.TicketDocumentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket document: %w", err)
	}
	return r.mapper.DocumentToDomain(&model), nil
}

func (r *TicketDocumentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Document, error) {
	var rows []models.TicketDocumentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket documents: %w", err)
	}

	docs := make([]*ticket.Document, 0, len(rows))
	for i := range rows {
		docs = append(docs, r.mapper.DocumentToDomain(&rows[i]))
	}
	return docs, nil
}

func (r *TicketDocumentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Delete(&models.TicketDocumentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket documents: %w", err)
	}
	return nil
}

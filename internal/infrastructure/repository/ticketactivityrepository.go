package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ ticket.ActivityRepository = (*TicketActivityRepository)(nil)

type TicketActivityRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketActivityRepository(gdb *gorm.DB) *TicketActivityRepository {
	return &TicketActivityRepository{db: gdb, mapper: mappers.NewTicketMapper()}
}

func (r *TicketActivityRepository) Create(ctx context.Context, a *ticket.Activity) error {
	model := r.mapper.ActivityToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record ticket activity: %w", err)
	}
	return a.SetID(model.ID)
}

// ListByTicket returns the audit trail newest first.
func (r *TicketActivityRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	var rows []models.TicketActivityModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Scopes(db.LatestFirst()).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket activities: %w", err)
	}

	out := make([]*ticket.Activity, 0, len(rows))
	for i := range rows {
		out = append(out, r.mapper.ActivityToDomain(&rows[i]))
	}
	return out, nil
}

func (r *TicketActivityRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Delete(&models.TicketActivityModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket activities: %w", err)
	}
	return nil
}

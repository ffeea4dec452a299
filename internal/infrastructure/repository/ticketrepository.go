package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

var _ ticket.TicketRepository = (*TicketRepository)(nil)

// ticketSearchColumns are matched by the free-text filter.
var ticketSearchColumns = []string{"description", "serial_number", "equipment_brand", "equipment_model"}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

// scoped restricts a ticket query to the visibility scope.
func scoped(scope ticket.Scope) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch scope.Kind {
		case ticket.ScopeAll:
			return q
		case ticket.ScopeSupport:
			return q.Where("support_id = ?", scope.SupportID)
		case ticket.ScopeCustomer:
			return q.Where("customer_id = ?", scope.CustomerID)
		default:
			return q.Where("1 = 0")
		}
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// map form so nil support_id and closed_at are written
	result := tx.Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"subject":            model.Subject,
			"description":        model.Description,
			"equipment_brand":    model.EquipmentBrand,
			"equipment_model":    model.EquipmentModel,
			"serial_number":      model.SerialNumber,
			"equipment_category": model.EquipmentCategory,
			"area":               model.Area,
			"status":             model.Status,
			"support_id":         model.SupportID,
			"updated_at":         model.UpdatedAt,
			"closed_at":          model.ClosedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.TicketModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).
		Scopes(scoped(filter.Scope), db.Search(filter.Search, ticketSearchColumns...))

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Subject != nil {
		query = query.Where("subject = ?", filter.Subject.String())
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupportID != nil {
		query = query.Where("support_id = ?", *filter.SupportID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []models.TicketModel
	if err := query.
		Scopes(db.LatestFirst(), db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListForExport(ctx context.Context, scope ticket.Scope, ids []uint) ([]*ticket.Ticket, error) {
	if ids != nil && len(ids) == 0 {
		return []*ticket.Ticket{}, nil
	}

	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).Scopes(scoped(scope))
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}

	var rows []models.TicketModel
	if err := query.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load tickets for export: %w", err)
	}
	return r.toDomainList(rows)
}

type groupCount struct {
	Key   string
	Count int64
}

type supportCount struct {
	SupportID uint
	Count     int64
}

func (r *TicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	base := func() *gorm.DB {
		return tx.Model(&models.TicketModel{}).Scopes(scoped(scope))
	}

	stats := &ticket.Stats{
		ByStatus:  map[vo.TicketStatus]int64{},
		BySubject: map[vo.Subject]int64{},
		BySupport: map[uint]int64{},
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	var byStatus []groupCount
	if err := base().Select("status AS `key`, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}
	for _, row := range byStatus {
		stats.ByStatus[vo.TicketStatus(row.Key)] = row.Count
	}

	var bySubject []groupCount
	if err := base().Select("subject AS `key`, COUNT(*) AS count").Group("subject").Scan(&bySubject).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by subject: %w", err)
	}
	for _, row := range bySubject {
		stats.BySubject[vo.Subject(row.Key)] = row.Count
	}

	var bySupport []supportCount
	if err := base().Select("support_id, COUNT(*) AS count").
		Where("support_id IS NOT NULL").
		Group("support_id").
		Scan(&bySupport).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by support: %w", err)
	}
	for _, row := range bySupport {
		stats.BySupport[row.SupportID] = row.Count
	}

	if err := base().Where("support_id IS NULL").Count(&stats.Unassigned).Error; err != nil {
		return nil, fmt.Errorf("failed to count unassigned tickets: %w", err)
	}

	return stats, nil
}

func (r *TicketRepository) ExistsByCustomer(ctx context.Context, customerID uint) (bool, error) {
	return r.exists(ctx, "customer_id = ?", customerID)
}

func (r *TicketRepository) ExistsBySupport(ctx context.Context, supportID uint) (bool, error) {
	return r.exists(ctx, "support_id = ?", supportID)
}

func (r *TicketRepository) exists(ctx context.Context, cond string, arg any) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).Where(cond, arg).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket references: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) toDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

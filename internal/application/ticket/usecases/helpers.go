package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func recordActivity(ctx context.Context, repo ticket.ActivityRepository, ticketID uint, actor Actor, kind ticket.ActivityKind, payload map[string]any) error {
	a, err := ticket.NewActivity(ticketID, actor.userIDPtr(), kind, payload)
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, a); err != nil {
		return fmt.Errorf("record %s activity: %w", kind, err)
	}
	return nil
}

// attachDocuments persists stored files as ticket documents with one activity each.
func attachDocuments(ctx context.Context, docRepo ticket.DocumentRepository, activityRepo ticket.ActivityRepository, ticketID uint, actor Actor, files []ticket.StoredFile) error {
	for _, f := range files {
		doc, err := ticket.NewDocument(ticketID, f, actor.userIDPtr())
		if err != nil {
			return err
		}
		if err := docRepo.Create(ctx, doc); err != nil {
			return fmt.Errorf("save document %q: %w", f.OriginalName, err)
		}
		if err := recordActivity(ctx, activityRepo, ticketID, actor, ticket.ActivityDocumentAdded, map[string]any{
			"document_id": doc.ID(),
			"name":        f.OriginalName,
		}); err != nil {
			return err
		}
	}
	return nil
}

func supportIDValue(id *uint) any {
	if id == nil {
		return nil
	}
	return *id
}

// partyLookup loads the customers and supports referenced by tickets.
type partyLookup struct {
	customerRepo customer.Repository
	supportRepo  support.Repository
}

func (l partyLookup) load(ctx context.Context, tickets []*ticket.Ticket) (map[uint]*customer.Customer, map[uint]*support.Support, error) {
	customerIDs := make([]uint, 0, len(tickets))
	supportIDs := make([]uint, 0, len(tickets))
	seenC := make(map[uint]bool)
	seenS := make(map[uint]bool)
	for _, t := range tickets {
		if !seenC[t.CustomerID()] {
			seenC[t.CustomerID()] = true
			customerIDs = append(customerIDs, t.CustomerID())
		}
		if sid := t.SupportID(); sid != nil && !seenS[*sid] {
			seenS[*sid] = true
			supportIDs = append(supportIDs, *sid)
		}
	}

	customers := make(map[uint]*customer.Customer, len(customerIDs))
	if len(customerIDs) > 0 {
		list, err := l.customerRepo.GetByIDs(ctx, customerIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load customers: %w", err)
		}
		for _, c := range list {
			customers[c.ID()] = c
		}
	}

	supports := make(map[uint]*support.Support, len(supportIDs))
	if len(supportIDs) > 0 {
		list, err := l.supportRepo.GetByIDs(ctx, supportIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load supports: %w", err)
		}
		for _, s := range list {
			supports[s.ID()] = s
		}
	}

	return customers, supports, nil
}

func notifyAssigned(ctx context.Context, notifier Notifier, log logger.Interface, t *ticket.Ticket, s *support.Support, c *customer.Customer, lang string) {
	if notifier == nil || s == nil {
		return
	}
	n := AssignedNotification{
		TicketID:     t.ID(),
		Subject:      t.Subject().String(),
		Description:  t.Description(),
		SupportName:  s.Name(),
		SupportEmail: s.Email().String(),
		Language:     lang,
	}
	if c != nil {
		n.CustomerName = c.Name()
	}
	if err := notifier.TicketAssigned(ctx, n); err != nil {
		log.Warnw("failed to send assignment notification", "ticket_id", t.ID(), "support_id", s.ID(), "error", err)
	}
}

func notifyClosed(ctx context.Context, notifier Notifier, log logger.Interface, t *ticket.Ticket, c *customer.Customer, lang string) {
	if notifier == nil || c == nil {
		return
	}
	n := ClosedNotification{
		TicketID:      t.ID(),
		Subject:       t.Subject().String(),
		CustomerName:  c.Name(),
		CustomerEmail: c.Email().String(),
		ClosedAt:      biztime.FormatOptional(t.ClosedAt(), constants.ExportTimeLayout),
		Language:      lang,
	}
	if err := notifier.TicketClosed(ctx, n); err != nil {
		log.Warnw("failed to send closure notification", "ticket_id", t.ID(), "customer_id", c.ID(), "error", err)
	}
}

package email

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// NoopNotifier is used when email is disabled. It only logs what would
// have been sent.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier(logger logger.Interface) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) TicketAssigned(ctx context.Context, msg usecases.AssignedNotification) error {
	n.logger.Debugw("email disabled, skipping assignment notification", "ticket_id", msg.TicketID, "to", msg.SupportEmail)
	return nil
}

func (n *NoopNotifier) TicketClosed(ctx context.Context, msg usecases.ClosedNotification) error {
	n.logger.Debugw("email disabled, skipping closure notification", "ticket_id", msg.TicketID, "to", msg.CustomerEmail)
	return nil
}

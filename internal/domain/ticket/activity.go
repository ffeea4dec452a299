package ticket

import (
	"fmt"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// ActivityKind names an entry in the ticket's audit trail.
type ActivityKind string

const (
	ActivityCreated       ActivityKind = "created"
	ActivityUpdated       ActivityKind = "updated"
	ActivityStatusChanged ActivityKind = "status_changed"
	ActivityAssigned      ActivityKind = "assigned"
	ActivityCommentAdded  ActivityKind = "comment_added"
	ActivityDocumentAdded ActivityKind = "document_added"
)

var validActivityKinds = map[ActivityKind]bool{
	ActivityCreated:       true,
	ActivityUpdated:       true,
	ActivityStatusChanged: true,
	ActivityAssigned:      true,
	ActivityCommentAdded:  true,
	ActivityDocumentAdded: true,
}

func (k ActivityKind) IsValid() bool {
	return validActivityKinds[k]
}

func (k ActivityKind) String() string {
	return string(k)
}

type Activity struct {
	id        uint
	ticketID  uint
	userID    *uint
	kind      ActivityKind
	payload   map[string]any
	createdAt time.Time
}

func NewActivity(ticketID uint, userID *uint, kind ActivityKind, payload map[string]any) (*Activity, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid activity kind: %s", kind)
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return &Activity{
		ticketID:  ticketID,
		userID:    userID,
		kind:      kind,
		payload:   payload,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructActivity(id, ticketID uint, userID *uint, kind ActivityKind, payload map[string]any, createdAt time.Time) *Activity {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Activity{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		kind:      kind,
		payload:   payload,
		createdAt: createdAt,
	}
}

func (a *Activity) ID() uint {
	return a.id
}

func (a *Activity) TicketID() uint {
	return a.ticketID
}

func (a *Activity) UserID() *uint {
	return a.userID
}

func (a *Activity) Kind() ActivityKind {
	return a.kind
}

func (a *Activity) Payload() map[string]any {
	out := make(map[string]any, len(a.payload))
	for k, v := range a.payload {
		out[k] = v
	}
	return out
}

func (a *Activity) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = id
	return nil
}

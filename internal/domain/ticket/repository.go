package ticket

import (
	"context"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

// TicketRepository persists tickets. GetByID returns (nil, nil) when the
// ticket does not exist.
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// ListForExport returns tickets in scope ordered by id descending. A nil
	// ids slice selects every ticket in scope.
	ListForExport(ctx context.Context, scope Scope, ids []uint) ([]*Ticket, error)
	Stats(ctx context.Context, scope Scope) (*Stats, error)
	ExistsByCustomer(ctx context.Context, customerID uint) (bool, error)
	ExistsBySupport(ctx context.Context, supportID uint) (bool, error)
}

type TicketFilter struct {
	Scope      Scope
	Status     *vo.TicketStatus
	Subject    *vo.Subject
	CustomerID *uint
	SupportID  *uint
	Search     string
	Page       int
	PageSize   int
}

// Stats aggregates ticket counts within a scope.
type Stats struct {
	Total      int64
	ByStatus   map[vo.TicketStatus]int64
	BySubject  map[vo.Subject]int64
	BySupport  map[uint]int64
	Unassigned int64
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, documentID uint) (*Document, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Document, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

// CommentRepository persists comments together with their attachments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
	GetAttachment(ctx context.Context, ticketID, commentID, attachmentID uint) (*CommentAttachment, error)
	ListAttachmentsByTicket(ctx context.Context, ticketID uint) ([]*CommentAttachment, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Activity, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

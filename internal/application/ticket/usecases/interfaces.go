package usecases

import (
	"context"
	"io"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type GetTicketFileExecutor interface {
	Execute(ctx context.Context, query GetTicketFileQuery) (*FileContent, error)
}

type ExportTicketsExecutor interface {
	Execute(ctx context.Context, cmd ExportTicketsCommand) (*ExportTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.TicketStatsDTO, error)
}

// IdentityLoader reads a user's stored email and role slugs. found is false
// when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID uint) (email string, roles []string, found bool, err error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStorage stores uploaded ticket files by key.
type FileStorage interface {
	Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Notifier sends ticket notifications. Implementations must not fail the
// caller's operation; errors are reported only for logging.
type Notifier interface {
	TicketAssigned(ctx context.Context, n AssignedNotification) error
	TicketClosed(ctx context.Context, n ClosedNotification) error
}

// MarkdownRenderer turns comment markdown into sanitized HTML.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// TableEncoder serialises export rows (first row is the header).
type TableEncoder interface {
	Encode(records [][]string) ([]byte, error)
	ContentType() string
	Extension() string
}

type AssignedNotification struct {
	TicketID     uint
	Subject      string
	Description  string
	SupportName  string
	SupportEmail string
	CustomerName string
	Language     string
}

type ClosedNotification struct {
	TicketID      uint
	Subject       string
	CustomerName  string
	CustomerEmail string
	ClosedAt      string
	Language      string
}

package usecases

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
)

func TestExportTicketsUseCase_SelectedIDs(t *testing.T) {
	f := newFixture(t)
	closed := newTestTicket(t, 7, 10, uintPtr(20), vo.StatusClosed)
	open := newTestTicket(t, 3, 11, nil, vo.StatusOpen)

	var gotIDs []uint
	f.tickets.ListForExportFunc = func(ctx context.Context, scope ticket.Scope, ids []uint) ([]*ticket.Ticket, error) {
		gotIDs = ids
		return []*ticket.Ticket{closed, open}, nil
	}
	encoder := &mockEncoder{}
	uc := NewExportTicketsUseCase(f.tickets, f.customers, f.supports, f.resolver, encoder, i18n.NewCatalog("en"), newMockLogger())

	result, err := uc.Execute(context.Background(), ExportTicketsCommand{
		Actor: adminActor, IDs: []uint{3, 7, 999}, AcceptLanguage: "es-MX,es;q=0.9",
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7, 999}, gotIDs)
	assert.Equal(t, 2, result.Rows)
	assert.Regexp(t, regexp.MustCompile(`^tickets_\d{8}_\d{6}\.csv$`), result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	require.Len(t, encoder.records, 3)
	assert.Equal(t, []string{
		"ID", "Asunto", "Descripción", "Cliente", "Soporte",
		"Marca", "Modelo", "Número de serie", "Categoría", "Área",
		"Estado", "Fecha de creación", "Fecha de cierre",
	}, encoder.records[0])
	row := encoder.records[1]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "Falla de hardware", row[1])
	assert.Equal(t, "Customer client@example.com", row[3])
	assert.Equal(t, "Tech tech@example.com", row[4])
	assert.Equal(t, "Cerrado", row[10])
	assert.Equal(t, "01/03/2024 10:00", row[11])
	assert.NotEmpty(t, row[12])

	assert.Equal(t, "", encoder.records[2][4])
	assert.Equal(t, "", encoder.records[2][12])
}

func TestExportTicketsUseCase_AllPassesNilIDs(t *testing.T) {
	f := newFixture(t)
	var gotIDs []uint
	var gotScope ticket.Scope
	f.tickets.ListForExportFunc = func(ctx context.Context, scope ticket.Scope, ids []uint) ([]*ticket.Ticket, error) {
		gotIDs, gotScope = ids, scope
		return nil, nil
	}
	encoder := &mockEncoder{}
	uc := NewExportTicketsUseCase(f.tickets, f.customers, f.supports, f.resolver, encoder, i18n.NewCatalog("en"), newMockLogger())

	result, err := uc.Execute(context.Background(), ExportTicketsCommand{Actor: supportActor, All: true, IDs: []uint{1}})

	require.NoError(t, err)
	assert.Nil(t, gotIDs)
	assert.Equal(t, ticket.SupportTickets(20), gotScope)
	assert.Zero(t, result.Rows)
	require.Len(t, encoder.records, 1)
	assert.Equal(t, []string{
		"ID", "Subject", "Description", "Customer", "Support",
		"Brand", "Model", "Serial Number", "Category", "Area",
		"Status", "Created At", "Closed At",
	}, encoder.records[0])
}

func TestExportTicketsUseCase_RequiresSelection(t *testing.T) {
	f := newFixture(t)
	uc := NewExportTicketsUseCase(f.tickets, f.customers, f.supports, f.resolver, &mockEncoder{}, i18n.NewCatalog("en"), newMockLogger())

	_, err := uc.Execute(context.Background(), ExportTicketsCommand{Actor: adminActor})

	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "ids")
}

func TestGetTicketStatsUseCase(t *testing.T) {
	f := newFixture(t)
	f.tickets.StatsFunc = func(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
		return &ticket.Stats{
			Total:      4,
			Unassigned: 1,
			ByStatus:   map[vo.TicketStatus]int64{vo.StatusOpen: 3, vo.StatusClosed: 1},
			BySubject:  map[vo.Subject]int64{vo.SubjectOther: 4},
			BySupport:  map[uint]int64{21: 3},
		}, nil
	}
	var recentFilter ticket.TicketFilter
	f.tickets.ListFunc = func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
		recentFilter = filter
		return []*ticket.Ticket{newTestTicket(t, 9, 10, nil, vo.StatusOpen)}, 4, nil
	}
	uc := NewGetTicketStatsUseCase(f.tickets, f.customers, f.supports, f.resolver, i18n.NewCatalog("en"), newMockLogger())

	stats, err := uc.Execute(context.Background(), GetTicketStatsQuery{Actor: adminActor})

	require.NoError(t, err)
	assert.Equal(t, 5, recentFilter.PageSize)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Unassigned)
	require.Len(t, stats.ByStatus, 3)
	assert.Equal(t, "open", stats.ByStatus[0].Key)
	assert.Equal(t, "Open", stats.ByStatus[0].Label)
	assert.Equal(t, int64(3), stats.ByStatus[0].Count)
	assert.Equal(t, int64(0), stats.ByStatus[1].Count)
	assert.Len(t, stats.BySubject, 6)
	require.Len(t, stats.BySupport, 2)
	assert.Equal(t, uint(21), stats.BySupport[0].SupportID)
	assert.Equal(t, int64(3), stats.BySupport[0].Count)
	assert.Len(t, stats.Recent, 1)
}

func TestGetTicketStatsUseCase_SupportHasNoWorkload(t *testing.T) {
	f := newFixture(t)
	uc := NewGetTicketStatsUseCase(f.tickets, f.customers, f.supports, f.resolver, i18n.NewCatalog("en"), newMockLogger())

	stats, err := uc.Execute(context.Background(), GetTicketStatsQuery{Actor: supportActor})

	require.NoError(t, err)
	assert.Nil(t, stats.BySupport)
}

func TestDeleteTicketUseCase(t *testing.T) {
	f := newFixture(t)
	f.withTickets(newTestTicket(t, 1, 10, nil, vo.StatusOpen))
	f.storage.files["tickets/1/a.txt"] = []byte("a")
	f.storage.files["tickets/1/b.txt"] = []byte("b")
	f.documents.ListByTicketFunc = func(ctx context.Context, ticketID uint) ([]*ticket.Document, error) {
		return []*ticket.Document{ticket.ReconstructDocument(1, 1, ticket.StoredFile{OriginalName: "a.txt", StorageKey: "tickets/1/a.txt", Size: 1}, nil, time.Now())}, nil
	}
	f.comments.ListAttachmentsByTicketFunc = func(ctx context.Context, ticketID uint) ([]*ticket.CommentAttachment, error) {
		return []*ticket.CommentAttachment{ticket.ReconstructCommentAttachment(1, 1, ticket.StoredFile{OriginalName: "b.txt", StorageKey: "tickets/1/b.txt", Size: 1}, time.Now())}, nil
	}
	deleted := uint(0)
	f.tickets.DeleteFunc = func(ctx context.Context, id uint) error {
		deleted = id
		return nil
	}
	uc := NewDeleteTicketUseCase(f.tickets, f.documents, f.comments, f.activities, f.resolver, f.store, f.tx, newMockLogger())

	require.True(t, errors.IsForbiddenError(uc.Execute(context.Background(), DeleteTicketCommand{Actor: supportActor, TicketID: 1})))

	require.NoError(t, uc.Execute(context.Background(), DeleteTicketCommand{Actor: adminActor, TicketID: 1}))
	assert.Equal(t, uint(1), deleted)
	assert.Empty(t, f.storage.files)
	assert.ElementsMatch(t, []string{"tickets/1/a.txt", "tickets/1/b.txt"}, f.storage.deleted)
}

func TestAddCommentUseCase(t *testing.T) {
	f := newFixture(t)
	f.withTickets(newTestTicket(t, 1, 10, nil, vo.StatusOpen))
	uc := NewAddCommentUseCase(f.tickets, f.comments, f.activities, f.users, f.resolver, f.store, f.tx, mockRenderer{}, newMockLogger())

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		Actor: customerActor, TicketID: 1, Body: "Still broken",
		Attachments: []FileUpload{upload("photo.png", "\x89PNG\r\n\x1a\n")},
	})

	require.NoError(t, err)
	assert.Equal(t, "Still broken", result.Body)
	assert.Equal(t, "<p>Still broken</p>", result.BodyHTML)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "photo.png", result.Attachments[0].Name)
	assert.Equal(t, "image/png", result.Attachments[0].ContentType)
	assert.Equal(t, []ticket.ActivityKind{ticket.ActivityCommentAdded}, f.activities.kinds())

	_, err = uc.Execute(context.Background(), AddCommentCommand{Actor: customerActor, TicketID: 1, Body: " "})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "body")
}

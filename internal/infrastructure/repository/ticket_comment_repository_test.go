package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

func TestTicketCommentRepository_CreateAndList(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	comments := NewTicketCommentRepository(gdb)

	first, err := ticket.NewComment(7, 1, "Replaced the fuser")
	require.NoError(t, err)
	require.NoError(t, first.Attach(ticket.StoredFile{OriginalName: "invoice.pdf", StorageKey: "tickets/7/a.pdf", ContentType: "application/pdf", Size: 120}))
	require.NoError(t, first.Attach(ticket.StoredFile{OriginalName: "photo.jpg", StorageKey: "tickets/7/b.jpg", ContentType: "image/jpeg", Size: 300}))
	require.NoError(t, comments.Create(ctx, first))

	second, err := ticket.NewComment(7, 2, "Thanks")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, second))

	other, err := ticket.NewComment(8, 2, "Different ticket")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, other))

	assert.NotZero(t, first.ID())
	require.Len(t, first.Attachments(), 2)
	assert.NotZero(t, first.Attachments()[0].ID())

	listed, err := comments.ListByTicket(ctx, 7)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID(), listed[0].ID(), "oldest first")
	require.Len(t, listed[0].Attachments(), 2)
	assert.Equal(t, "invoice.pdf", listed[0].Attachments()[0].File().OriginalName)
	assert.Empty(t, listed[1].Attachments())

	empty, err := comments.ListByTicket(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTicketCommentRepository_GetAttachmentChecksOwnership(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	comments := NewTicketCommentRepository(gdb)

	c, err := ticket.NewComment(7, 1, "See attached")
	require.NoError(t, err)
	require.NoError(t, c.Attach(ticket.StoredFile{OriginalName: "log.txt", StorageKey: "tickets/7/log.txt", Size: 10}))
	require.NoError(t, comments.Create(ctx, c))
	attID := c.Attachments()[0].ID()

	found, err := comments.GetAttachment(ctx, 7, c.ID(), attID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "tickets/7/log.txt", found.File().StorageKey)

	wrongTicket, err := comments.GetAttachment(ctx, 8, c.ID(), attID)
	require.NoError(t, err)
	assert.Nil(t, wrongTicket)

	wrongComment, err := comments.GetAttachment(ctx, 7, c.ID()+1, attID)
	require.NoError(t, err)
	assert.Nil(t, wrongComment)
}

func TestTicketCommentRepository_DeleteByTicket(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	comments := NewTicketCommentRepository(gdb)

	for _, ticketID := range []uint{7, 8} {
		c, err := ticket.NewComment(ticketID, 1, "note")
		require.NoError(t, err)
		require.NoError(t, c.Attach(ticket.StoredFile{OriginalName: "a.txt", StorageKey: "k", Size: 1}))
		require.NoError(t, comments.Create(ctx, c))
	}

	atts, err := comments.ListAttachmentsByTicket(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, atts, 1)

	require.NoError(t, comments.DeleteByTicket(ctx, 7))

	atts, err = comments.ListAttachmentsByTicket(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, atts)

	remaining, err := comments.ListByTicket(ctx, 8)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Len(t, remaining[0].Attachments(), 1)
}

func TestTicketDocumentAndActivityRepositories(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	docs := NewTicketDocumentRepository(gdb)
	activities := NewTicketActivityRepository(gdb)
	uploader := uint(3)

	doc, err := ticket.NewDocument(7, ticket.StoredFile{OriginalName: "manual.pdf", StorageKey: "tickets/7/m.pdf", Size: 42}, &uploader)
	require.NoError(t, err)
	require.NoError(t, docs.Create(ctx, doc))

	got, err := docs.GetByID(ctx, doc.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.File().Size)
	assert.Equal(t, &uploader, got.UploadedBy())

	created, err := ticket.NewActivity(7, &uploader, ticket.ActivityCreated, map[string]any{"status": string(vo.StatusOpen)})
	require.NoError(t, err)
	require.NoError(t, activities.Create(ctx, created))
	changed, err := ticket.NewActivity(7, &uploader, ticket.ActivityStatusChanged, map[string]any{"from": "open", "to": "closed"})
	require.NoError(t, err)
	require.NoError(t, activities.Create(ctx, changed))

	trail, err := activities.ListByTicket(ctx, 7)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, ticket.ActivityStatusChanged, trail[0].Kind(), "newest first")
	assert.Equal(t, "closed", trail[0].Payload()["to"])

	require.NoError(t, docs.DeleteByTicket(ctx, 7))
	require.NoError(t, activities.DeleteByTicket(ctx, 7))

	listed, err := docs.ListByTicket(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, listed)
	trail, err = activities.ListByTicket(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

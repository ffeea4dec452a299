package usecases

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestGetTicketUseCase_BuildsDetail(t *testing.T) {
	f := newFixture(t)
	f.withTickets(newTestTicket(t, 1, 10, uintPtr(20), vo.StatusOpen))

	author, err := user.ReconstructUser(3, "Client User", "client@example.com", "", time.Now(), time.Now())
	require.NoError(t, err)
	f.users.users = append(f.users.users, author)

	now := time.Now()
	file := ticket.StoredFile{OriginalName: "a.txt", StorageKey: "tickets/1/a.txt", ContentType: "text/plain", Size: 3}
	f.documents.ListByTicketFunc = func(ctx context.Context, ticketID uint) ([]*ticket.Document, error) {
		return []*ticket.Document{ticket.ReconstructDocument(4, 1, file, nil, now)}, nil
	}
	f.comments.ListByTicketFunc = func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
		att := ticket.ReconstructCommentAttachment(8, 6, file, now)
		c, err := ticket.ReconstructComment(6, 1, 3, "**hi**", []*ticket.CommentAttachment{att}, now)
		return []*ticket.Comment{c}, err
	}
	f.activities.ListByTicketFunc = func(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
		return []*ticket.Activity{ticket.ReconstructActivity(2, 1, nil, ticket.ActivityCreated, nil, now)}, nil
	}

	uc := NewGetTicketUseCase(f.tickets, f.documents, f.comments, f.activities, f.customers, f.supports, f.users, f.resolver, mockRenderer{}, newMockLogger())
	detail, err := uc.Execute(context.Background(), GetTicketQuery{Actor: customerActor, TicketID: 1})

	require.NoError(t, err)
	assert.Equal(t, uint(1), detail.ID)
	require.NotNil(t, detail.Customer)
	require.NotNil(t, detail.Support)
	require.Len(t, detail.Documents, 1)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Client User", detail.Comments[0].AuthorName)
	assert.Equal(t, "<p>**hi**</p>", detail.Comments[0].BodyHTML)
	assert.Len(t, detail.Comments[0].Attachments, 1)
	require.Len(t, detail.Activities, 1)
	assert.Equal(t, "created", detail.Activities[0].Kind)
}

func TestGetTicketUseCase_NotFound(t *testing.T) {
	f := newFixture(t)
	uc := NewGetTicketUseCase(f.tickets, f.documents, f.comments, f.activities, f.customers, f.supports, f.users, f.resolver, mockRenderer{}, newMockLogger())

	_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: adminActor, TicketID: 42})

	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetTicketFileUseCase(t *testing.T) {
	f := newFixture(t)
	f.withTickets(newTestTicket(t, 1, 10, nil, vo.StatusOpen))
	f.storage.files["tickets/1/doc.txt"] = []byte("content")

	doc := ticket.ReconstructDocument(4, 1, ticket.StoredFile{
		OriginalName: "doc.txt", StorageKey: "tickets/1/doc.txt", ContentType: "text/plain", Size: 7,
	}, nil, time.Now())
	f.documents.GetByIDFunc = func(ctx context.Context, id uint) (*ticket.Document, error) {
		if id == 4 {
			return doc, nil
		}
		return nil, nil
	}
	f.comments.GetAttachmentFunc = func(ctx context.Context, ticketID, commentID, attachmentID uint) (*ticket.CommentAttachment, error) {
		if ticketID == 1 && commentID == 6 && attachmentID == 8 {
			return ticket.ReconstructCommentAttachment(8, 6, doc.File(), time.Now()), nil
		}
		return nil, nil
	}
	uc := NewGetTicketFileUseCase(f.tickets, f.documents, f.comments, f.resolver, f.store, newMockLogger())

	t.Run("document", func(t *testing.T) {
		content, err := uc.Execute(context.Background(), GetTicketFileQuery{Actor: customerActor, TicketID: 1, DocumentID: 4})
		require.NoError(t, err)
		defer content.Reader.Close()
		data, err := io.ReadAll(content.Reader)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
		assert.Equal(t, "doc.txt", content.Name)
	})

	t.Run("comment attachment", func(t *testing.T) {
		content, err := uc.Execute(context.Background(), GetTicketFileQuery{Actor: adminActor, TicketID: 1, CommentID: 6, AttachmentID: 8})
		require.NoError(t, err)
		content.Reader.Close()
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetTicketFileQuery{Actor: adminActor, TicketID: 1, DocumentID: 5})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("ticket out of scope", func(t *testing.T) {
		other := Actor{UserID: 5, Email: "other@example.com", Roles: []string{"customer"}}
		f.identities.add(other)
		_, err := uc.Execute(context.Background(), GetTicketFileQuery{Actor: other, TicketID: 1, DocumentID: 4})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

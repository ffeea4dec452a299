package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func newCreateTicketUseCase(f *fixture) *CreateTicketUseCase {
	return NewCreateTicketUseCase(
		f.tickets, f.documents, f.activities, f.customers, f.supports,
		f.resolver, f.store, f.tx, f.notifier, newMockLogger(),
	)
}

func TestCreateTicketUseCase_CustomerForcedToLinkedCustomer(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       customerActor,
		Subject:     "software_issue",
		Description: "Cannot log in",
		CustomerID:  uintPtr(11),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(10), result.CustomerID)
	assert.Equal(t, vo.StatusOpen.String(), result.Status)
	assert.Equal(t, uint(3), *result.UserID)
	require.NotNil(t, result.Customer)
	assert.Equal(t, "client@example.com", result.Customer.Email)
	assert.Equal(t, []ticket.ActivityKind{ticket.ActivityCreated}, f.activities.kinds())
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreateTicketUseCase_UnlinkedCustomerForbidden(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)
	nobody := Actor{UserID: 9, Email: "nobody@example.com", Roles: []string{"customer"}}
	f.identities.add(nobody)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       nobody,
		Subject:     "other",
		Description: "Help",
	})

	assert.True(t, errors.IsForbiddenError(err))
}

func TestCreateTicketUseCase_StaffMustPassExistingCustomer(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: supportActor, Subject: "other", Description: "Help",
	})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "customer_id")

	_, err = uc.Execute(context.Background(), CreateTicketCommand{
		Actor: supportActor, Subject: "other", Description: "Help", CustomerID: uintPtr(99),
	})
	require.True(t, errors.IsValidationError(err))
	assert.Equal(t, "customer not found", errors.GetAppError(err).Fields["customer_id"])
}

func TestCreateTicketUseCase_InvalidSubject(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: adminActor, Subject: "printer", Description: "Help", CustomerID: uintPtr(10),
	})

	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "subject")
}

func TestCreateTicketUseCase_AdminAssignsSupport(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       adminActor,
		Subject:     "maintenance",
		Description: "Yearly check",
		CustomerID:  uintPtr(10),
		SupportID:   uintPtr(20),
		Language:    "es",
	})

	require.NoError(t, err)
	require.NotNil(t, result.SupportID)
	assert.Equal(t, uint(20), *result.SupportID)
	assert.Equal(t, []ticket.ActivityKind{ticket.ActivityCreated, ticket.ActivityAssigned}, f.activities.kinds())
	require.Len(t, f.notifier.assigned, 1)
	assert.Equal(t, "tech@example.com", f.notifier.assigned[0].SupportEmail)
	assert.Equal(t, "es", f.notifier.assigned[0].Language)
}

func TestCreateTicketUseCase_SupportCannotAssign(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: supportActor, Subject: "other", Description: "Help",
		CustomerID: uintPtr(10), SupportID: uintPtr(20),
	})

	assert.True(t, errors.IsForbiddenError(err))
}

func TestCreateTicketUseCase_StoresDocuments(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       adminActor,
		Subject:     "installation",
		Description: "New workstation",
		CustomerID:  uintPtr(10),
		Documents:   []FileUpload{upload("invoice.pdf", "%PDF-1.4 test"), upload("notes.txt", "hello")},
	})

	require.NoError(t, err)
	require.Len(t, f.documents.created, 2)
	assert.Len(t, f.storage.files, 2)
	assert.Equal(t, "invoice.pdf", f.documents.created[0].File().OriginalName)
	assert.Equal(t, result.ID, f.documents.created[0].TicketID())
	assert.Equal(t, []ticket.ActivityKind{
		ticket.ActivityCreated, ticket.ActivityDocumentAdded, ticket.ActivityDocumentAdded,
	}, f.activities.kinds())
}

func TestCreateTicketUseCase_RejectsDisallowedExtension(t *testing.T) {
	f := newFixture(t)
	uc := newCreateTicketUseCase(f)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: adminActor, Subject: "other", Description: "Help", CustomerID: uintPtr(10),
		Documents: []FileUpload{upload("virus.exe", "MZ")},
	})

	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "documents")
	assert.Zero(t, f.tx.calls)
}

func TestCreateTicketUseCase_RemovesFilesWhenTransactionFails(t *testing.T) {
	f := newFixture(t)
	f.documents.CreateFunc = func(ctx context.Context, doc *ticket.Document) error {
		return assert.AnError
	}
	uc := newCreateTicketUseCase(f)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: adminActor, Subject: "other", Description: "Help", CustomerID: uintPtr(10),
		Documents: []FileUpload{upload("notes.txt", "hello")},
	})

	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
	assert.Empty(t, f.storage.files)
	assert.Len(t, f.storage.deleted, 1)
}

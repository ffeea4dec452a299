package usecases

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc           func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc           func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc           func(ctx context.Context, ticketID uint) error
	GetByIDFunc          func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListFunc             func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListForExportFunc    func(ctx context.Context, scope ticket.Scope, ids []uint) ([]*ticket.Ticket, error)
	StatsFunc            func(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error)
	ExistsByCustomerFunc func(ctx context.Context, customerID uint) (bool, error)
	ExistsBySupportFunc  func(ctx context.Context, supportID uint) (bool, error)

	updated []*ticket.Ticket
	nextID  uint
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.nextID++
	return t.SetID(m.nextID)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated = append(m.updated, t)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListForExport(ctx context.Context, scope ticket.Scope, ids []uint) ([]*ticket.Ticket, error) {
	if m.ListForExportFunc != nil {
		return m.ListForExportFunc(ctx, scope, ids)
	}
	return nil, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, scope)
	}
	return &ticket.Stats{}, nil
}

func (m *mockTicketRepository) ExistsByCustomer(ctx context.Context, customerID uint) (bool, error) {
	if m.ExistsByCustomerFunc != nil {
		return m.ExistsByCustomerFunc(ctx, customerID)
	}
	return false, nil
}

func (m *mockTicketRepository) ExistsBySupport(ctx context.Context, supportID uint) (bool, error) {
	if m.ExistsBySupportFunc != nil {
		return m.ExistsBySupportFunc(ctx, supportID)
	}
	return false, nil
}

type mockDocumentRepository struct {
	CreateFunc         func(ctx context.Context, doc *ticket.Document) error
	GetByIDFunc        func(ctx context.Context, documentID uint) (*ticket.Document, error)
	ListByTicketFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Document, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error

	created []*ticket.Document
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *ticket.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	m.created = append(m.created, doc)
	return doc.SetID(uint(len(m.created)))
}

func (m *mockDocumentRepository) GetByID(ctx context.Context, documentID uint) (*ticket.Document, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Document, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockCommentRepository struct {
	CreateFunc                  func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc            func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	GetAttachmentFunc           func(ctx context.Context, ticketID, commentID, attachmentID uint) (*ticket.CommentAttachment, error)
	ListAttachmentsByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.CommentAttachment, error)
	DeleteByTicketFunc          func(ctx context.Context, ticketID uint) error

	created []*ticket.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.created = append(m.created, c)
	return c.SetID(uint(len(m.created)))
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) GetAttachment(ctx context.Context, ticketID, commentID, attachmentID uint) (*ticket.CommentAttachment, error) {
	if m.GetAttachmentFunc != nil {
		return m.GetAttachmentFunc(ctx, ticketID, commentID, attachmentID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListAttachmentsByTicket(ctx context.Context, ticketID uint) ([]*ticket.CommentAttachment, error) {
	if m.ListAttachmentsByTicketFunc != nil {
		return m.ListAttachmentsByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockActivityRepository struct {
	CreateFunc         func(ctx context.Context, a *ticket.Activity) error
	ListByTicketFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Activity, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error

	created []*ticket.Activity
}

func (m *mockActivityRepository) Create(ctx context.Context, a *ticket.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	m.created = append(m.created, a)
	return a.SetID(uint(len(m.created)))
}

func (m *mockActivityRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockActivityRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockActivityRepository) kinds() []ticket.ActivityKind {
	out := make([]ticket.ActivityKind, 0, len(m.created))
	for _, a := range m.created {
		out = append(out, a.Kind())
	}
	return out
}

// mockCustomerRepository serves customers from an in-memory slice.
type mockCustomerRepository struct {
	customers []*customer.Customer
	err       error
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (m *mockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (m *mockCustomerRepository) Delete(ctx context.Context, id uint) error               { return nil }

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.customers {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByIDs(ctx context.Context, ids []uint) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, id := range ids {
		if c, _ := m.GetByID(ctx, id); c != nil {
			out = append(out, c)
		}
	}
	return out, m.err
}

func (m *mockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.customers {
		if strings.EqualFold(c.Email().String(), email) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}

func (m *mockCustomerRepository) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, int64, error) {
	return m.customers, int64(len(m.customers)), m.err
}

// mockSupportRepository serves supports from an in-memory slice.
type mockSupportRepository struct {
	supports []*support.Support
	err      error
}

func (m *mockSupportRepository) Create(ctx context.Context, s *support.Support) error { return nil }
func (m *mockSupportRepository) Update(ctx context.Context, s *support.Support) error { return nil }
func (m *mockSupportRepository) Delete(ctx context.Context, id uint) error             { return nil }

func (m *mockSupportRepository) GetByID(ctx context.Context, id uint) (*support.Support, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.supports {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSupportRepository) GetByIDs(ctx context.Context, ids []uint) ([]*support.Support, error) {
	var out []*support.Support
	for _, id := range ids {
		if s, _ := m.GetByID(ctx, id); s != nil {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *mockSupportRepository) GetByEmail(ctx context.Context, email string) (*support.Support, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.supports {
		if strings.EqualFold(s.Email().String(), email) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSupportRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}

func (m *mockSupportRepository) List(ctx context.Context, filter support.ListFilter) ([]*support.Support, int64, error) {
	return m.supports, int64(len(m.supports)), m.err
}

func (m *mockSupportRepository) ListAll(ctx context.Context) ([]*support.Support, error) {
	return m.supports, m.err
}

type mockUserRepository struct {
	users []*user.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error      { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, _ := m.GetByID(ctx, id); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return m.users, int64(len(m.users)), nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}

// mockIdentities stores the current email and roles per user id.
type mockIdentities struct {
	actors map[uint]Actor
	err    error
}

func (m *mockIdentities) add(actors ...Actor) {
	for _, a := range actors {
		m.actors[a.UserID] = a
	}
}

func (m *mockIdentities) LoadIdentity(ctx context.Context, userID uint) (string, []string, bool, error) {
	if m.err != nil {
		return "", nil, false, m.err
	}
	a, ok := m.actors[userID]
	if !ok {
		return "", nil, false, nil
	}
	return a.Email, a.Roles, true, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// mockStorage keeps stored files in memory.
type mockStorage struct {
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: map[string][]byte{}}
}

func (m *mockStorage) Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.files[key] = data
	return nil
}

func (m *mockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.files, key)
	return nil
}

type mockNotifier struct {
	assigned []AssignedNotification
	closed   []ClosedNotification
	err      error
}

func (m *mockNotifier) TicketAssigned(ctx context.Context, n AssignedNotification) error {
	m.assigned = append(m.assigned, n)
	return m.err
}

func (m *mockNotifier) TicketClosed(ctx context.Context, n ClosedNotification) error {
	m.closed = append(m.closed, n)
	return m.err
}

type mockRenderer struct{}

func (mockRenderer) Render(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

type mockEncoder struct {
	records [][]string
}

func (m *mockEncoder) Encode(records [][]string) ([]byte, error) {
	m.records = records
	return []byte("encoded"), nil
}

func (m *mockEncoder) ContentType() string { return "text/csv; charset=utf-8" }
func (m *mockEncoder) Extension() string   { return "csv" }

func newMockLogger() logger.Interface {
	return logger.NewNopLogger()
}

// Fixtures

var (
	adminActor    = Actor{UserID: 1, Email: "admin@example.com", Roles: []string{"admin"}}
	supportActor  = Actor{UserID: 2, Email: "tech@example.com", Roles: []string{"support"}}
	customerActor = Actor{UserID: 3, Email: "client@example.com", Roles: []string{"customer"}}
)

func uintPtr(v uint) *uint {
	return &v
}

func newTestCustomer(t *testing.T, id uint, email string) *customer.Customer {
	t.Helper()
	c, err := customer.ReconstructCustomer(id, customer.Profile{Name: "Customer " + email, Company: "Acme", Email: email}, time.Now(), time.Now())
	require.NoError(t, err)
	return c
}

func newTestSupport(t *testing.T, id uint, email string) *support.Support {
	t.Helper()
	s, err := support.ReconstructSupport(id, support.Profile{Name: "Tech " + email, Email: email}, time.Now(), time.Now())
	require.NoError(t, err)
	return s
}

func newTestTicket(t *testing.T, id, customerID uint, supportID *uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	var closedAt *time.Time
	if status.IsClosed() {
		now := time.Now().UTC()
		closedAt = &now
	}
	tk, err := ticket.ReconstructTicket(
		id,
		vo.SubjectHardwareFailure,
		"Printer does not turn on",
		ticket.Equipment{Brand: "HP", Model: "LaserJet", SerialNumber: "SN-1"},
		status,
		customerID,
		supportID,
		nil,
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		closedAt,
	)
	require.NoError(t, err)
	return tk
}

func upload(name, content string) FileUpload {
	return FileUpload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// fixture bundles the collaborators shared by the ticket use cases.
type fixture struct {
	tickets    *mockTicketRepository
	documents  *mockDocumentRepository
	comments   *mockCommentRepository
	activities *mockActivityRepository
	customers  *mockCustomerRepository
	supports   *mockSupportRepository
	users      *mockUserRepository
	identities *mockIdentities
	storage    *mockStorage
	notifier   *mockNotifier
	tx         *mockTxManager
	resolver   *ScopeResolver
	store      *AttachmentStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tickets:    &mockTicketRepository{nextID: 100},
		documents:  &mockDocumentRepository{},
		comments:   &mockCommentRepository{},
		activities: &mockActivityRepository{},
		customers: &mockCustomerRepository{customers: []*customer.Customer{
			newTestCustomer(t, 10, "client@example.com"),
			newTestCustomer(t, 11, "other@example.com"),
		}},
		supports: &mockSupportRepository{supports: []*support.Support{
			newTestSupport(t, 20, "tech@example.com"),
			newTestSupport(t, 21, "tech2@example.com"),
		}},
		users:      &mockUserRepository{},
		identities: &mockIdentities{actors: map[uint]Actor{}},
		storage:    newMockStorage(),
		notifier:   &mockNotifier{},
		tx:         &mockTxManager{},
	}
	f.identities.add(adminActor, supportActor, customerActor)
	f.resolver = NewScopeResolver(f.customers, f.supports, f.identities)
	f.store = NewAttachmentStore(f.storage, UploadPolicy{MaxBytes: 1024, AllowedExtensions: []string{".pdf", ".txt", ".png"}}, newMockLogger())
	return f
}

func (f *fixture) withTickets(tickets ...*ticket.Ticket) {
	f.tickets.GetByIDFunc = func(ctx context.Context, id uint) (*ticket.Ticket, error) {
		for _, tk := range tickets {
			if tk.ID() == id {
				return tk, nil
			}
		}
		return nil, nil
	}
}

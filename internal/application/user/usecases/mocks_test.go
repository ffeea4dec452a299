package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockUserRepository struct {
	users     map[uint]*domainUser.User
	nextID    uint
	deleted   []uint
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[uint]*domainUser.User{}}
}

func (m *mockUserRepository) Create(ctx context.Context, u *domainUser.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*domainUser.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, id := range ids {
		if u := m.users[id]; u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *domainUser.User) error {
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter domainUser.ListFilter) ([]*domainUser.User, int64, error) {
	var out []*domainUser.User
	for id := uint(1); id <= m.nextID; id++ {
		if u := m.users[id]; u != nil {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil && u.ID() != excludeID, nil
}

type mockRoleAssigner struct {
	roles      map[uint][]string
	known      map[string]bool
	removed    []uint
	synced     []uint
	syncedInTx int
}

func newMockRoleAssigner() *mockRoleAssigner {
	return &mockRoleAssigner{
		roles: map[uint][]string{},
		known: map[string]bool{"admin": true, "support": true, "customer": true},
	}
}

func (m *mockRoleAssigner) AssignRolesToUser(ctx context.Context, userID uint, slugs []string) error {
	for _, s := range slugs {
		if !m.known[s] {
			return fmt.Errorf("unknown role %s", s)
		}
	}
	m.roles[userID] = slugs
	return nil
}

func (m *mockRoleAssigner) GetUserRoleSlugs(ctx context.Context, userIDs []uint) (map[uint][]string, error) {
	out := map[uint][]string{}
	for _, id := range userIDs {
		out[id] = m.roles[id]
	}
	return out, nil
}

func (m *mockRoleAssigner) RemoveUser(ctx context.Context, userID uint) error {
	m.removed = append(m.removed, userID)
	delete(m.roles, userID)
	return nil
}

func (m *mockRoleAssigner) SyncUserRoles(ctx context.Context, userID uint) error {
	if inTx(ctx) {
		m.syncedInTx++
	}
	m.synced = append(m.synced, userID)
	return nil
}

type mockPolicyReader map[string][][2]string

func (m mockPolicyReader) GetPoliciesForRole(role string) ([][2]string, error) {
	return m[role], nil
}

// plainHasher prefixes instead of hashing.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	issued []string
}

func (m *mockTokenIssuer) Issue(userID uint, email string, roles []string) (string, time.Time, error) {
	token := fmt.Sprintf("token-%d-%s", userID, strings.Join(roles, ","))
	m.issued = append(m.issued, token)
	return token, time.Now().Add(time.Hour), nil
}

type mockTxManager struct{}

type inTxKey struct{}

func (mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(inTxKey{}).(bool)
	return v
}

type mockCustomerRepository struct {
	customers []*customer.Customer
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	m.customers = append(m.customers, c)
	return c.SetID(uint(len(m.customers)))
}
func (m *mockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (m *mockCustomerRepository) Delete(ctx context.Context, id uint) error               { return nil }
func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepository) GetByIDs(ctx context.Context, ids []uint) ([]*customer.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	for _, c := range m.customers {
		if c.Email().String() == email {
			return c, nil
		}
	}
	return nil, nil
}
func (m *mockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}
func (m *mockCustomerRepository) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, int64, error) {
	return m.customers, int64(len(m.customers)), nil
}

type mockSupportRepository struct {
	supports []*support.Support
}

func (m *mockSupportRepository) Create(ctx context.Context, s *support.Support) error { return nil }
func (m *mockSupportRepository) Update(ctx context.Context, s *support.Support) error { return nil }
func (m *mockSupportRepository) Delete(ctx context.Context, id uint) error             { return nil }
func (m *mockSupportRepository) GetByID(ctx context.Context, id uint) (*support.Support, error) {
	return nil, nil
}
func (m *mockSupportRepository) GetByIDs(ctx context.Context, ids []uint) ([]*support.Support, error) {
	return nil, nil
}
func (m *mockSupportRepository) GetByEmail(ctx context.Context, email string) (*support.Support, error) {
	for _, s := range m.supports {
		if s.Email().String() == email {
			return s, nil
		}
	}
	return nil, nil
}
func (m *mockSupportRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}
func (m *mockSupportRepository) List(ctx context.Context, filter support.ListFilter) ([]*support.Support, int64, error) {
	return m.supports, int64(len(m.supports)), nil
}
func (m *mockSupportRepository) ListAll(ctx context.Context) ([]*support.Support, error) {
	return m.supports, nil
}

func newMockLogger() logger.Interface {
	return logger.NewNopLogger()
}

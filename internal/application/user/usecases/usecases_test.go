package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/support"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestCreateUserUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	uc := NewCreateUserUseCase(repo, roles, plainHasher{}, vo.DefaultPasswordPolicy(), mockTxManager{}, newMockLogger())
	ctx := context.Background()

	created, err := uc.Execute(ctx, CreateUserCommand{
		Name: "Ana", Email: "Ana@Example.com", Password: "secret123", Roles: []string{"support"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email)
	assert.Equal(t, []string{"support"}, created.Roles)
	assert.Equal(t, "hashed:secret123", repo.users[created.ID].PasswordHash())
	assert.Equal(t, []uint{created.ID}, roles.synced)
	assert.Zero(t, roles.syncedInTx, "enforcer sync must run after commit")

	_, err = uc.Execute(ctx, CreateUserCommand{Name: "Dup", Email: "ana@example.com", Password: "secret123"})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "email")

	_, err = uc.Execute(ctx, CreateUserCommand{Name: "Weak", Email: "weak@example.com", Password: "short"})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "password")
}

func TestUpdateUserUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, vo.DefaultPasswordPolicy(), mockTxManager{}, newMockLogger())
	uc := NewUpdateUserUseCase(repo, roles, plainHasher{}, vo.DefaultPasswordPolicy(), mockTxManager{}, newMockLogger())
	ctx := context.Background()

	a, err := create.Execute(ctx, CreateUserCommand{Name: "A", Email: "a@example.com", Password: "secret123", Roles: []string{"customer"}})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateUserCommand{Name: "B", Email: "b@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := uc.Execute(ctx, UpdateUserCommand{UserID: a.ID, Name: "A2", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, []string{"customer"}, updated.Roles)
	assert.Equal(t, "hashed:secret123", repo.users[a.ID].PasswordHash())
	syncedBefore := len(roles.synced)

	newRoles := []string{"admin"}
	updated, err = uc.Execute(ctx, UpdateUserCommand{UserID: a.ID, Name: "A2", Email: "a@example.com", Password: "newpass456", Roles: &newRoles})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, updated.Roles)
	assert.Equal(t, "hashed:newpass456", repo.users[a.ID].PasswordHash())
	assert.Len(t, roles.synced, syncedBefore+1)
	assert.Zero(t, roles.syncedInTx)

	_, err = uc.Execute(ctx, UpdateUserCommand{UserID: a.ID, Name: "A2", Email: "b@example.com"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, UpdateUserCommand{UserID: 99, Name: "X", Email: "x@example.com"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeleteUserUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	uc := NewDeleteUserUseCase(repo, roles, mockTxManager{}, newMockLogger())
	ctx := context.Background()

	u, err := create.Execute(ctx, CreateUserCommand{Name: "A", Email: "a@example.com", Password: "secret123", Roles: []string{"admin"}})
	require.NoError(t, err)

	assert.True(t, errors.IsForbiddenError(uc.Execute(ctx, DeleteUserCommand{ActorID: u.ID, UserID: u.ID})))
	require.NoError(t, uc.Execute(ctx, DeleteUserCommand{ActorID: 42, UserID: u.ID}))
	assert.Equal(t, []uint{u.ID}, repo.deleted)
	assert.Equal(t, []uint{u.ID}, roles.removed)
	assert.Equal(t, []uint{u.ID, u.ID}, roles.synced)
	assert.Zero(t, roles.syncedInTx)
	assert.True(t, errors.IsNotFoundError(uc.Execute(ctx, DeleteUserCommand{ActorID: 42, UserID: u.ID})))
}

func TestListUsersUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	ctx := context.Background()
	_, err := create.Execute(ctx, CreateUserCommand{Name: "A", Email: "a@example.com", Password: "secret123", Roles: []string{"admin"}})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateUserCommand{Name: "B", Email: "b@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := NewListUsersUseCase(repo, roles, newMockLogger()).Execute(ctx, ListUsersQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, []string{"admin"}, resp.Users[0].Roles)
	assert.Equal(t, []string{}, resp.Users[1].Roles)
	assert.Equal(t, 15, resp.PageSize)

	got, err := NewGetUserUseCase(repo, roles, newMockLogger()).Execute(ctx, resp.Users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestLoginUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	tokens := &mockTokenIssuer{}
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	uc := NewLoginUseCase(repo, roles, plainHasher{}, tokens, newMockLogger())
	ctx := context.Background()

	u, err := create.Execute(ctx, CreateUserCommand{Name: "A", Email: "a@example.com", Password: "secret123", Roles: []string{"support"}})
	require.NoError(t, err)

	result, err := uc.Execute(ctx, LoginCommand{Email: " A@example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, result.User.ID)
	assert.Equal(t, "token-1-support", result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	_, err = uc.Execute(ctx, LoginCommand{Email: "a@example.com", Password: "wrong"})
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)

	_, err = uc.Execute(ctx, LoginCommand{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
	assert.Len(t, tokens.issued, 1)
}

func TestRegisterUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	customers := &mockCustomerRepository{}
	tokens := &mockTokenIssuer{}
	ctx := context.Background()

	disabled := NewRegisterUseCase(repo, customers, roles, plainHasher{}, nil, tokens, mockTxManager{}, false, newMockLogger())
	_, err := disabled.Execute(ctx, RegisterCommand{Name: "A", Email: "a@example.com", Password: "secret123"})
	assert.True(t, errors.IsForbiddenError(err))

	uc := NewRegisterUseCase(repo, customers, roles, plainHasher{}, nil, tokens, mockTxManager{}, true, newMockLogger())
	result, err := uc.Execute(ctx, RegisterCommand{Name: "Ana", Email: "ana@example.com", Password: "secret123", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer"}, result.User.Roles)
	assert.NotEmpty(t, result.Token)
	require.Len(t, customers.customers, 1)
	assert.Equal(t, "Acme", customers.customers[0].Company())

	_, err = uc.Execute(ctx, RegisterCommand{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	assert.True(t, errors.IsValidationError(err))
	assert.Len(t, customers.customers, 1)
}

func TestGetCurrentUserUseCase(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	ctx := context.Background()

	u, err := create.Execute(ctx, CreateUserCommand{Name: "Tech", Email: "tech@example.com", Password: "secret123", Roles: []string{"support"}})
	require.NoError(t, err)

	sup, err := support.ReconstructSupport(4, support.Profile{Name: "Tech", Email: "tech@example.com"}, time.Now(), time.Now())
	require.NoError(t, err)

	policies := mockPolicyReader{"support": {{"tickets", "view"}, {"tickets", "comment"}}}
	uc := NewGetCurrentUserUseCase(repo, &mockCustomerRepository{}, &mockSupportRepository{supports: []*support.Support{sup}}, roles, policies, newMockLogger())

	me, err := uc.Execute(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tickets:comment", "tickets:view"}, me.Permissions)
	require.NotNil(t, me.Support)
	assert.Equal(t, uint(4), me.Support.ID)
	assert.Nil(t, me.Customer)

	_, err = uc.Execute(ctx, 99)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}

func TestIdentityLoader_ReflectsRoleAndEmailChanges(t *testing.T) {
	repo := newMockUserRepository()
	roles := newMockRoleAssigner()
	create := NewCreateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	update := NewUpdateUserUseCase(repo, roles, plainHasher{}, nil, mockTxManager{}, newMockLogger())
	loader := NewIdentityLoader(repo, roles)
	ctx := context.Background()

	u, err := create.Execute(ctx, CreateUserCommand{Name: "Bob", Email: "bob@example.com", Password: "secret123", Roles: []string{"admin"}})
	require.NoError(t, err)

	email, slugs, found, err := loader.LoadIdentity(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "bob@example.com", email)
	assert.Equal(t, []string{"admin"}, slugs)

	demoted := []string{"customer"}
	_, err = update.Execute(ctx, UpdateUserCommand{UserID: u.ID, Name: "Bob", Email: "robert@example.com", Roles: &demoted})
	require.NoError(t, err)

	email, slugs, found, err = loader.LoadIdentity(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "robert@example.com", email)
	assert.Equal(t, []string{"customer"}, slugs)

	_, _, found, err = loader.LoadIdentity(ctx, 404)
	require.NoError(t, err)
	assert.False(t, found)
}

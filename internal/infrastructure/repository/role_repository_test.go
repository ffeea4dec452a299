package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	pvo "github.com/orris-inc/helpdesk/internal/domain/permission/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func createRole(t *testing.T, repo *RoleRepositoryImpl, slug string) *permission.Role {
	t.Helper()
	role, err := permission.NewRole(slug+" role", slug, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), role))
	return role
}

func createUser(t *testing.T, repo *UserRepository, name, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(name, email)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestRoleRepository_PermissionLinks(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	roles := NewRoleRepository(gdb)
	perms := NewPermissionRepository(gdb)

	view, err := permission.NewPermission(pvo.ResourceTickets, pvo.ActionView, "")
	require.NoError(t, err)
	require.NoError(t, perms.Create(ctx, view))
	export, err := permission.NewPermission(pvo.ResourceTickets, pvo.ActionExport, "")
	require.NoError(t, err)
	require.NoError(t, perms.Create(ctx, export))

	role := createRole(t, roles, "auditor")
	require.NoError(t, roles.SetPermissions(ctx, role.ID(), []uint{view.ID(), export.ID()}))

	got, err := roles.GetPermissions(ctx, role.ID())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tickets:export", got[0].Code())
	assert.Equal(t, "tickets:view", got[1].Code())

	require.NoError(t, roles.SetPermissions(ctx, role.ID(), []uint{view.ID()}))
	got, err = roles.GetPermissions(ctx, role.ID())
	require.NoError(t, err)
	require.Len(t, got, 1)

	byCode, err := perms.GetByCode(ctx, "tickets", "export")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, export.ID(), byCode.ID())

	missing, err := perms.GetByCode(ctx, "tickets", "delete")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRoleRepository_UserLinks(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	roles := NewRoleRepository(gdb)
	users := NewUserRepository(gdb, logger.NewNopLogger())

	admin := createRole(t, roles, "admin")
	support := createRole(t, roles, "support")
	alice := createUser(t, users, "Alice", "alice@example.test")
	bob := createUser(t, users, "Bob", "bob@example.test")

	require.NoError(t, roles.SetUserRoles(ctx, alice.ID(), []uint{admin.ID(), support.ID()}))
	require.NoError(t, roles.SetUserRoles(ctx, bob.ID(), []uint{support.ID()}))

	byUser, err := roles.GetRolesForUsers(ctx, []uint{alice.ID(), bob.ID()})
	require.NoError(t, err)
	require.Len(t, byUser[alice.ID()], 2)
	assert.Equal(t, "admin", byUser[alice.ID()][0].Slug())
	require.Len(t, byUser[bob.ID()], 1)
	assert.Equal(t, "support", byUser[bob.ID()][0].Slug())

	holders, err := roles.GetUserIDsByRole(ctx, support.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID(), bob.ID()}, holders)

	require.NoError(t, roles.Delete(ctx, support.ID()))
	aliceRoles, err := roles.GetUserRoles(ctx, alice.ID())
	require.NoError(t, err)
	require.Len(t, aliceRoles, 1)
	assert.Equal(t, "admin", aliceRoles[0].Slug())

	gone, err := roles.GetByID(ctx, support.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRoleRepository_GetBySlugs(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	roles := NewRoleRepository(gdb)
	createRole(t, roles, "admin")
	createRole(t, roles, "customer")

	empty, err := roles.GetBySlugs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := roles.GetBySlugs(ctx, []string{"customer", "ghost"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "customer", found[0].Slug())

	exists, err := roles.ExistsBySlug(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_ListByRoleAndSearch(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	roles := NewRoleRepository(gdb)
	users := NewUserRepository(gdb, logger.NewNopLogger())

	support := createRole(t, roles, "support")
	alice := createUser(t, users, "Alice Tech", "alice@example.test")
	createUser(t, users, "Bob Client", "bob@example.test")
	carol := createUser(t, users, "Carol Tech", "carol@example.test")
	require.NoError(t, roles.SetUserRoles(ctx, alice.ID(), []uint{support.ID()}))
	require.NoError(t, roles.SetUserRoles(ctx, carol.ID(), []uint{support.ID()}))

	got, total, err := users.List(ctx, user.ListFilter{Role: "support"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	assert.Equal(t, carol.ID(), got[0].ID())

	got, total, err = users.List(ctx, user.ListFilter{Role: "support", Search: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, alice.ID(), got[0].ID())

	got, total, err = users.List(ctx, user.ListFilter{Search: "tech", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 1)

	taken, err := users.ExistsByEmail(ctx, "alice@example.test", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = users.ExistsByEmail(ctx, "alice@example.test", alice.ID())
	require.NoError(t, err)
	assert.False(t, taken)
}

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/permission/valueobjects"
)

func TestParseCode(t *testing.T) {
	resource, action, err := ParseCode("tickets:export")
	require.NoError(t, err)
	assert.Equal(t, vo.ResourceTickets, resource)
	assert.Equal(t, vo.ActionExport, action)

	for _, bad := range []string{"tickets", ":view", "tickets:fly", ""} {
		_, _, err := ParseCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestPermission_Code(t *testing.T) {
	p, err := NewPermission(vo.ResourceRoles, vo.ActionUpdate, "Edit roles")
	require.NoError(t, err)
	assert.Equal(t, "roles:update", p.Code())
}

func TestNewRole(t *testing.T) {
	r, err := NewRole(" Field Technician ", "field-tech", "")
	require.NoError(t, err)
	assert.Equal(t, "Field Technician", r.Name())
	assert.False(t, r.IsSystem())
	assert.NoError(t, r.CheckDeletable())

	_, err = NewRole("X", "Field Tech", "")
	assert.Error(t, err)
	_, err = NewRole("", "x", "")
	assert.Error(t, err)
}

func TestSystemRole_NotDeletable(t *testing.T) {
	r, err := NewSystemRole("Administrator", "admin", "")
	require.NoError(t, err)
	assert.True(t, r.IsSystem())
	assert.Error(t, r.CheckDeletable())
}

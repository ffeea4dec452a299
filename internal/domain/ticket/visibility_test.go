package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		supportID  *uint
		customerID *uint
		want       Scope
	}{
		{"admin sees all", []string{"admin"}, nil, nil, AllTickets()},
		{"admin beats support", []string{"support", "admin"}, uintPtr(2), nil, AllTickets()},
		{"linked support", []string{"support"}, uintPtr(2), nil, SupportTickets(2)},
		{"support beats customer", []string{"customer", "support"}, uintPtr(2), uintPtr(9), SupportTickets(2)},
		{"unlinked support sees nothing", []string{"support"}, nil, uintPtr(9), NoTickets()},
		{"linked customer", []string{"customer"}, nil, uintPtr(9), CustomerTickets(9)},
		{"unlinked customer sees nothing", []string{"customer"}, nil, nil, NoTickets()},
		{"no known role", []string{"auditor"}, uintPtr(2), uintPtr(9), NoTickets()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScope(tt.roles, tt.supportID, tt.customerID))
		})
	}
}

func TestScope_Allows(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen, nil)
	_, _ = tk.AssignSupport(uintPtr(2))

	assert.True(t, AllTickets().Allows(tk))
	assert.True(t, SupportTickets(2).Allows(tk))
	assert.False(t, SupportTickets(3).Allows(tk))
	assert.True(t, CustomerTickets(7).Allows(tk))
	assert.False(t, CustomerTickets(8).Allows(tk))
	assert.False(t, NoTickets().Allows(tk))
	assert.False(t, Scope{}.Allows(tk))
	assert.False(t, AllTickets().Allows(nil))
}

func TestScope_IsEmpty(t *testing.T) {
	assert.True(t, NoTickets().IsEmpty())
	assert.True(t, Scope{}.IsEmpty())
	assert.False(t, CustomerTickets(1).IsEmpty())
}

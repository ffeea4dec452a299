package ticket

import "github.com/orris-inc/helpdesk/internal/shared/authorization"

type ScopeKind string

const (
	ScopeAll      ScopeKind = "all"
	ScopeSupport  ScopeKind = "support"
	ScopeCustomer ScopeKind = "customer"
	ScopeNone     ScopeKind = "none"
)

// Scope is the set of tickets a user may see.
type Scope struct {
	Kind       ScopeKind
	SupportID  uint
	CustomerID uint
}

func AllTickets() Scope {
	return Scope{Kind: ScopeAll}
}

func NoTickets() Scope {
	return Scope{Kind: ScopeNone}
}

func SupportTickets(supportID uint) Scope {
	return Scope{Kind: ScopeSupport, SupportID: supportID}
}

func CustomerTickets(customerID uint) Scope {
	return Scope{Kind: ScopeCustomer, CustomerID: customerID}
}

// ResolveScope applies role precedence admin > support > customer. The linked
// support/customer IDs come from matching the user's email and may be nil.
func ResolveScope(roles []string, linkedSupportID, linkedCustomerID *uint) Scope {
	role, ok := authorization.EffectiveRole(roles)
	if !ok {
		return NoTickets()
	}

	switch role {
	case authorization.RoleAdmin:
		return AllTickets()
	case authorization.RoleSupport:
		if linkedSupportID == nil {
			return NoTickets()
		}
		return SupportTickets(*linkedSupportID)
	default:
		if linkedCustomerID == nil {
			return NoTickets()
		}
		return CustomerTickets(*linkedCustomerID)
	}
}

func (s Scope) IsAll() bool {
	return s.Kind == ScopeAll
}

// IsEmpty reports whether the scope can never match a ticket.
func (s Scope) IsEmpty() bool {
	return s.Kind == ScopeNone || s.Kind == ""
}

// Allows reports whether t is inside the scope.
func (s Scope) Allows(t *Ticket) bool {
	if t == nil {
		return false
	}
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeSupport:
		return t.IsAssignedTo(s.SupportID)
	case ScopeCustomer:
		return t.customerID == s.CustomerID
	default:
		return false
	}
}

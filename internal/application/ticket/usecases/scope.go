package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/authorization"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

// Actor is the authenticated user performing an operation. Email and Roles
// start out as the session token's claims; ScopeResolver.Current replaces
// them with the stored values.
type Actor struct {
	UserID uint
	Email  string
	Roles  []string

	current bool
}

func (a Actor) IsAdmin() bool {
	return authorization.IsAdmin(a.Roles)
}

func (a Actor) userIDPtr() *uint {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

// ScopeResolver maps an actor to the tickets they may see by linking the
// user's email to a Support or Customer record.
type ScopeResolver struct {
	customerRepo customer.Repository
	supportRepo  support.Repository
	identities   IdentityLoader
}

func NewScopeResolver(customerRepo customer.Repository, supportRepo support.Repository, identities IdentityLoader) *ScopeResolver {
	return &ScopeResolver{
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		identities:   identities,
	}
}

// Current returns the actor with the email and roles currently stored for
// the user. A user that no longer exists keeps no roles.
func (r *ScopeResolver) Current(ctx context.Context, actor Actor) (Actor, error) {
	if actor.current {
		return actor, nil
	}
	out := Actor{UserID: actor.UserID, current: true}
	if actor.UserID == 0 {
		return out, nil
	}

	email, roles, found, err := r.identities.LoadIdentity(ctx, actor.UserID)
	if err != nil {
		return Actor{}, fmt.Errorf("load identity of user %d: %w", actor.UserID, err)
	}
	if found {
		out.Email = email
		out.Roles = roles
	}
	return out, nil
}

func (r *ScopeResolver) Resolve(ctx context.Context, actor Actor) (ticket.Scope, error) {
	actor, err := r.Current(ctx, actor)
	if err != nil {
		return ticket.Scope{}, err
	}

	role, ok := authorization.EffectiveRole(actor.Roles)
	if !ok {
		return ticket.NoTickets(), nil
	}

	var supportID, customerID *uint
	switch role {
	case authorization.RoleSupport:
		s, err := r.supportRepo.GetByEmail(ctx, actor.Email)
		if err != nil {
			return ticket.Scope{}, fmt.Errorf("resolve linked support: %w", err)
		}
		if s != nil {
			id := s.ID()
			supportID = &id
		}
	case authorization.RoleCustomer:
		c, err := r.LinkedCustomer(ctx, actor)
		if err != nil {
			return ticket.Scope{}, err
		}
		if c != nil {
			id := c.ID()
			customerID = &id
		}
	}

	return ticket.ResolveScope(actor.Roles, supportID, customerID), nil
}

// LinkedCustomer returns the customer whose email matches the actor, or nil.
func (r *ScopeResolver) LinkedCustomer(ctx context.Context, actor Actor) (*customer.Customer, error) {
	actor, err := r.Current(ctx, actor)
	if err != nil {
		return nil, err
	}
	c, err := r.customerRepo.GetByEmail(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve linked customer: %w", err)
	}
	return c, nil
}

// loadScoped fetches a ticket and hides it when it falls outside the actor's scope.
func loadScoped(ctx context.Context, repo ticket.TicketRepository, resolver *ScopeResolver, actor Actor, ticketID uint) (*ticket.Ticket, ticket.Scope, error) {
	scope, err := resolver.Resolve(ctx, actor)
	if err != nil {
		return nil, ticket.Scope{}, err
	}

	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, scope, fmt.Errorf("load ticket %d: %w", ticketID, err)
	}
	if t == nil || !scope.Allows(t) {
		return nil, scope, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
	}
	return t, scope, nil
}

// Package authorization holds the role slugs that drive ticket visibility.
package authorization

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSupport  UserRole = "support"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSupport || r == RoleCustomer
}

// HasRole reports whether roles contains target.
func HasRole(roles []string, target UserRole) bool {
	for _, role := range roles {
		if role == string(target) {
			return true
		}
	}
	return false
}

func IsAdmin(roles []string) bool {
	return HasRole(roles, RoleAdmin)
}

func IsSupport(roles []string) bool {
	return HasRole(roles, RoleSupport)
}

func IsCustomer(roles []string) bool {
	return HasRole(roles, RoleCustomer)
}

// EffectiveRole picks the strongest of the well-known roles: admin, then
// support, then customer. The second result is false when none is held.
func EffectiveRole(roles []string) (UserRole, bool) {
	switch {
	case IsAdmin(roles):
		return RoleAdmin, true
	case IsSupport(roles):
		return RoleSupport, true
	case IsCustomer(roles):
		return RoleCustomer, true
	default:
		return "", false
	}
}

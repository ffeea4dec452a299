package permission

// PermissionEnforcer is the runtime policy store. Subjects are user IDs
// rendered as strings; roles are role slugs.
type PermissionEnforcer interface {
	Enforce(userID string, resource string, action string) (bool, error)
	SetRolePolicies(role string, policies [][2]string) error
	RemoveRole(role string) error
	SetRolesForUser(userID string, roles []string) error
	DeleteUser(userID string) error
	GetRolesForUser(userID string) ([]string, error)
	GetPoliciesForRole(role string) ([][2]string, error)
	LoadPolicy() error
}

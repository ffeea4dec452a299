package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// rbacModel grants a request when the subject holds a role with a matching
// (resource, action) policy.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ permission.PermissionEnforcer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds a casbin enforcer persisted in the casbin_rule table of db.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(userID string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(userID, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// SetRolePolicies replaces every p rule of role with policies.
func (e *Enforcer) SetRolePolicies(role string, policies [][2]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveFilteredPolicy(0, role); err != nil {
		e.logger.Errorw("failed to clear role policies", "error", err, "role", role)
		return fmt.Errorf("failed to clear policies of %s: %w", role, err)
	}

	if len(policies) == 0 {
		return nil
	}

	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		rules = append(rules, []string{role, p[0], p[1]})
	}
	if _, err := e.enforcer.AddPolicies(rules); err != nil {
		e.logger.Errorw("failed to add role policies", "error", err, "role", role)
		return fmt.Errorf("failed to add policies of %s: %w", role, err)
	}

	return nil
}

// RemoveRole drops the role's policies and every user assignment to it.
func (e *Enforcer) RemoveRole(role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRole(role); err != nil {
		e.logger.Errorw("failed to delete role", "error", err, "role", role)
		return fmt.Errorf("failed to delete role %s: %w", role, err)
	}
	return nil
}

// SetRolesForUser replaces the g rules of userID.
func (e *Enforcer) SetRolesForUser(userID string, roles []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRolesForUser(userID); err != nil {
		e.logger.Errorw("failed to clear user roles", "error", err, "user_id", userID)
		return fmt.Errorf("failed to clear roles for user: %w", err)
	}

	if len(roles) == 0 {
		return nil
	}

	if _, err := e.enforcer.AddRolesForUser(userID, roles); err != nil {
		e.logger.Errorw("failed to add roles for user", "error", err, "user_id", userID, "roles", roles)
		return fmt.Errorf("failed to add roles for user: %w", err)
	}

	return nil
}

func (e *Enforcer) DeleteUser(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteUser(userID); err != nil {
		e.logger.Errorw("failed to delete user from enforcer", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (e *Enforcer) GetRolesForUser(userID string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetRolesForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user: %w", err)
	}

	return roles, nil
}

// GetPoliciesForRole returns (resource, action) pairs granted to role.
func (e *Enforcer) GetPoliciesForRole(role string) ([][2]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules, err := e.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, fmt.Errorf("failed to get policies for role: %w", err)
	}

	out := make([][2]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		out = append(out, [2]string{rule[1], rule[2]})
	}
	return out, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}

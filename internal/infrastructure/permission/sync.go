package permission

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// PermissionSync rebuilds casbin_rule from the roles, role_permissions and
// user_roles tables.
type PermissionSync struct {
	db       *gorm.DB
	enforcer *Enforcer
	logger   logger.Interface
}

func NewPermissionSync(db *gorm.DB, enforcer *Enforcer, logger logger.Interface) *PermissionSync {
	return &PermissionSync{
		db:       db,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (s *PermissionSync) SyncToCasbin(ctx context.Context) error {
	s.logger.Info("syncing permissions to Casbin...")

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM casbin_rule WHERE ptype IN ('p', 'g')").Error; err != nil {
			return fmt.Errorf("failed to clear casbin rules: %w", err)
		}
		if err := s.syncRolePermissions(tx); err != nil {
			return fmt.Errorf("failed to sync role permissions: %w", err)
		}
		if err := s.syncUserRoles(tx); err != nil {
			return fmt.Errorf("failed to sync user roles: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.enforcer != nil {
		if err := s.enforcer.LoadPolicy(); err != nil {
			return err
		}
	}

	s.logger.Info("permissions synced to Casbin successfully")
	return nil
}

func (s *PermissionSync) syncRolePermissions(tx *gorm.DB) error {
	query := `
		INSERT INTO casbin_rule (ptype, v0, v1, v2, v3, v4, v5)
		SELECT DISTINCT
			'p',
			r.slug,
			p.resource,
			p.action,
			'', '', ''
		FROM role_permissions rp
		JOIN roles r ON rp.role_id = r.id
		JOIN permissions p ON rp.permission_id = p.id
	`

	result := tx.Exec(query)
	if result.Error != nil {
		return result.Error
	}

	s.logger.Infow("synced role permissions to Casbin", "count", result.RowsAffected)
	return nil
}

func (s *PermissionSync) syncUserRoles(tx *gorm.DB) error {
	query := `
		INSERT INTO casbin_rule (ptype, v0, v1, v2, v3, v4, v5)
		SELECT DISTINCT
			'g',
			CAST(ur.user_id AS CHAR),
			r.slug,
			'', '', '', ''
		FROM user_roles ur
		JOIN roles r ON ur.role_id = r.id
	`

	result := tx.Exec(query)
	if result.Error != nil {
		return result.Error
	}

	s.logger.Infow("synced user roles to Casbin", "count", result.RowsAffected)
	return nil
}

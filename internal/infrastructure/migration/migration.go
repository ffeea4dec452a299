// Package migration applies the database schema.
package migration

import (
	"fmt"
	"io/fs"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks golang-migrate for MySQL and AutoMigrate for SQLite.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	if cfg.IsSQLite() {
		strategy = NewGormAutoMigrateStrategy(log)
	} else {
		scripts, err := fs.Sub(Scripts, "scripts")
		if err != nil {
			return nil, fmt.Errorf("failed to load migration scripts: %w", err)
		}
		strategy = NewGolangMigrateStrategy(scripts, cfg.GetMigrateURL(), log)
	}
	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Up(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Up(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	if err := m.strategy.Down(db, steps); err != nil {
		return fmt.Errorf("rollback failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) Status(db *gorm.DB) (Status, error) {
	return m.strategy.Status(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

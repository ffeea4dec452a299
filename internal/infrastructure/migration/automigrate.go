package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// GormAutoMigrateStrategy creates and alters tables from the persistence
// models. It is used for SQLite, where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	models []any
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		models: models.All(),
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Up(db *gorm.DB) error {
	s.logger.Infow("running gorm auto migrate", "models_count", len(s.models))
	if err := db.AutoMigrate(s.models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) Down(_ *gorm.DB, _ int) error {
	return ErrNotVersioned
}

func (s *GormAutoMigrateStrategy) Status(db *gorm.DB) (Status, error) {
	return Status{}, nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// Package bootstrap holds the start-up steps shared by the CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// MapEnvToGinMode converts an environment name to a gin mode. An empty name
// keeps the mode from the configuration.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "":
		return ""
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// Environment loads the configuration and initialises the logger, the
// business timezone and the database connection.
func Environment(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(env))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.App.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

// Migrate applies every pending schema change.
func Migrate(cfg *config.Config, db *gorm.DB, log logger.Interface) error {
	manager, err := migration.NewManager(&cfg.Database, log)
	if err != nil {
		return err
	}
	return manager.Up(db)
}

// SeedPermissions creates the built-in roles and permissions when missing.
func SeedPermissions(ctx context.Context, db *gorm.DB, log logger.Interface) error {
	defaults, err := permission.LoadDefaults()
	if err != nil {
		return err
	}

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}

	seeder := permission.NewSeeder(
		repository.NewRoleRepository(db),
		repository.NewPermissionRepository(db),
		enforcer,
		log,
	)
	if err := seeder.Seed(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	return nil
}

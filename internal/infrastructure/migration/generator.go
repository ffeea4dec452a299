package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	now         func() time.Time
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		now:         time.Now,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration creates a new migration file pair (up and down) and
// returns their paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if !migrationName.MatchString(name) {
		return "", "", fmt.Errorf("migration name must be lower snake case: %q", name)
	}

	now := g.now()
	timestamp := now.Format("20060102150405")
	upFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	created := now.Format("2006-01-02 15:04:05")
	up := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)
	down := fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)

	if err := os.WriteFile(upFilePath, []byte(up), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downFilePath, []byte(down), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully", "up_file", upFilePath, "down_file", downFilePath)
	return upFilePath, downFilePath, nil
}

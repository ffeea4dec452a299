package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/orris-inc/helpdesk/internal/shared/config"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HELPDESK_SERVER_PORT", "9090")
	t.Setenv("HELPDESK_DATABASE_SQLITE_PATH", "test.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, sharedConfig.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "test.db", cfg.Database.GetDSN())
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes())
	assert.Same(t, cfg, Get())
}

func TestLoad_ModeOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HELPDESK_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

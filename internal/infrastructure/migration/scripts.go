package migration

import "embed"

// Scripts holds the versioned MySQL migrations applied by golang-migrate.
//
//go:embed scripts/*.sql
var Scripts embed.FS

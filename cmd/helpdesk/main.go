package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/seed"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/server"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// @title Help Desk API
// @version 1.0
// @description Ticketing API for customers and support technicians.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	rootCmd := &cobra.Command{
		Use:     "helpdesk",
		Short:   "Helpdesk - ticketing for customers and support technicians",
		Long:    `Helpdesk serves the ticketing API and ships the migration and seeding tools it needs.`,
		Version: constants.Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

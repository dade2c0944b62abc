package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apops/apops/bootstrap"
	"github.com/apops/apops/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the apops API server.

The server will:
  - Load configuration from apops.yaml (or --config)
  - Or load configuration from APOPS_* environment variables
  - Open the workspace database and apply migrations
  - Serve the JSON API with operator authentication

Environment variables (for Docker deployments):
  APOPS_AUTH_JWT_SECRET     - JWT signing secret (required for env-only config)
  APOPS_AUTH_PASSWORD_HASH  - Bcrypt hash of the operator password
  APOPS_DATABASE_DSN        - Database path (default: apops.db)
  APOPS_SERVER_PORT         - Server port (default: 8080)
  APOPS_WORKSPACES          - Comma-separated workspace ids (default: A,B,C)
  APOPS_LOG_LEVEL           - Log level: debug, info, warn, error

Examples:
  apops serve
  apops serve --config /etc/apops/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !config.HasEnvConfig() {
		fmt.Println("No configuration found.")
		fmt.Println()
		fmt.Printf("Option 1: Create %s (see apops hash-password for the password hash)\n", cfgFile)
		fmt.Println("Option 2: Set APOPS_AUTH_JWT_SECRET and APOPS_AUTH_PASSWORD_HASH")
		return nil
	}

	app, err := bootstrap.New(cfgFile)
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}

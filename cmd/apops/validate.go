package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apops/apops/adapters/sqlite"
	"github.com/apops/apops/config"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var validateCheckDatabase bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the apops configuration file.

Checks:
  - YAML syntax is valid
  - Required fields are present
  - Database is writable (optional)

Examples:
  apops validate
  apops validate --config /etc/apops/config.yaml --check-database`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckDatabase, "check-database", false, "check if database is writable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Printf("  %s Config file exists\n", checkMark)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config valid\n", checkMark)

	if validateCheckDatabase && cfg.Database.Driver != "memory" {
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			fmt.Printf("  %s Database writable\n", crossMark)
			return fmt.Errorf("database error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			fmt.Printf("  %s Database writable\n", crossMark)
			return fmt.Errorf("migrate error: %w", err)
		}
		db.Close()
		fmt.Printf("  %s Database writable\n", checkMark)
	}

	fmt.Println()
	fmt.Printf("Listen address: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Workspaces:     %v\n", cfg.Workspaces)
	fmt.Printf("Database:       %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
	return nil
}

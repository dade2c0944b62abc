package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apops",
	Short: "Rental property administration: invoicing and payment reconciliation",
	Long: `apops manages apartment workspaces: units, tenants, leases,
electric meter readings, monthly invoice generation and payment
reconciliation with tenant credit balances.

Quick start:
  apops hash-password   # Hash the operator password for the config file
  apops serve           # Start the API server

Management:
  apops generate        # Run invoice generation for a month
  apops backup          # Export or import a workspace snapshot
  apops validate        # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apops.yaml", "config file path")
}

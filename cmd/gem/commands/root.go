package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gem",
	Short: "Global Equities Momentum allocation service",
	Long: `GEM Strategy CLI

Recommends an asset allocation by comparing trailing 12-month returns
across a fixed ETF universe: hold the best equity performer while its
momentum is positive, fall back to bonds otherwise.

Examples:
  go run ./cmd/gem serve
  go run ./cmd/gem evaluate --date 2026-08-30
  go run ./cmd/gem universe`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one strategy evaluation and print the recommendation",
	Long: `Evaluates the GEM rule once for the given reference date and
prints the recommendation as JSON.

Example:
  go run ./cmd/gem evaluate
  go run ./cmd/gem evaluate --date 2026-08-30`,
	RunE: runEvaluate,
}

var evaluateDate string

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateDate, "date", "", "reference date (YYYY-MM-DD, default today)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if evaluateDate != "" {
		asOf, err = time.Parse("2006-01-02", evaluateDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", evaluateDate)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := p.engine.Evaluate(ctx, asOf)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

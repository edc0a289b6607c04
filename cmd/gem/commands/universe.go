package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Print the configured instrument universe",
	RunE:  runUniverse,
}

func init() {
	rootCmd.AddCommand(universeCmd)
}

func runUniverse(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-12s %s\n", "NAME", "SYMBOL", "ROLE")
	for _, inst := range p.universe.Instruments {
		fmt.Printf("%-12s %-12s %s\n", inst.Name, inst.Symbol, inst.Role)
	}
	fmt.Printf("%-12s %-12s %s\n", p.universe.Benchmark.Name, p.universe.Benchmark.Symbol, p.universe.Benchmark.Role)

	return nil
}

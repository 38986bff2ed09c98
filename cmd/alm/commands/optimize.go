package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hjkrause/alm-engine/internal/engine"
)

// optimizeCmd searches asset volumes for the configured objective
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize per-asset volumes under box constraints",
	Long: `Treats the multi-scenario projection as a black-box objective (the
worst-case solved starting-asset value) and minimizes it over per-asset
volume scalars clamped to the configured box.

Example:
  go run ./cmd/alm optimize
  go run ./cmd/alm optimize --method trustregion --rates 0.03,0.07,0.11`,
	RunE: runOptimize,
}

var optimizeMethod string

func init() {
	rootCmd.AddCommand(optimizeCmd)
	registerBookFlags(optimizeCmd)
	optimizeCmd.Flags().StringVar(&optimizeMethod, "method", "gradient", "solver: gradient or trustregion")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	book, err := bookFromFlags()
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Engine, log)

	log.WithFields(map[string]interface{}{
		"method":    optimizeMethod,
		"assets":    book.BondCount,
		"scenarios": len(book.Rates),
	}).Info("Starting optimization")

	res, err := eng.Optimize(book, optimizeMethod)
	if err != nil {
		return err
	}

	fmt.Printf("converged: %v after %d iterations\n", res.Converged, res.Iterations)
	fmt.Printf("objective: %.6f\n", res.Objective)
	for i, v := range res.X {
		fmt.Printf("x[%d] = %.6f\n", i, v)
	}

	if !res.Converged {
		log.Warn("Solver stopped at the iteration cap without converging")
	}
	return nil
}

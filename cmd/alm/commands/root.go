package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alm",
	Short: "Asset-liability projection and optimization engine",
	Long: `ALM engine CLI

Projects a cash-flow book forward through time under yield-curve
scenarios, solves the starting-asset scalar per scenario, and optimizes
per-asset volumes under box constraints.

Examples:
  go run ./cmd/alm project --rates 0.03,0.04,0.05
  go run ./cmd/alm optimize --method trustregion
  go run ./cmd/alm serve
  go run ./cmd/alm schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

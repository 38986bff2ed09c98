package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/database"
)

// projectCmd runs the multi-scenario projection
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the multi-scenario projection",
	Long: `Solves the starting-asset scalar per scenario and projects the
book forward, printing the solved scalar, step count and ending surplus
per scenario.

Example:
  go run ./cmd/alm project --rates 0.03,0.05,0.07
  go run ./cmd/alm project --horizon 20 --persist`,
	RunE: runProject,
}

var projectPersist bool

func init() {
	rootCmd.AddCommand(projectCmd)
	registerBookFlags(projectCmd)
	projectCmd.Flags().BoolVar(&projectPersist, "persist", false, "store the run in Postgres")
}

func runProject(cmd *cobra.Command, args []string) error {
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
		"today":     book.Today.String(),
		"horizon":   book.HorizonYears,
		"scenarios": len(book.Rates),
	}).Info("Starting multi-scenario projection")

	results, runErr := eng.RunMultiScenario(book)

	for i, res := range results {
		if res == nil {
			fmt.Printf("scenario %d (rate %.2f%%): failed\n", i, book.Rates[i]*100)
			continue
		}
		fmt.Printf("scenario %d (rate %.2f%%): scalar=%.6f steps=%d ending_surplus=%.6f\n",
			i, book.Rates[i]*100, res.Scalar, res.Steps(), res.EndingSurplus)
	}

	if projectPersist {
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := store.NewRepository(db.Pool)
		ctx := context.Background()
		if err := repo.Migrate(ctx); err != nil {
			return err
		}

		run := &store.Run{
			Start: book.Today.String(),
			End:   book.Today.AddYears(book.HorizonYears).String(),
			Label: "cli projection",
		}
		if err := repo.SaveRun(ctx, run, results); err != nil {
			return err
		}
		fmt.Printf("stored run %s\n", run.ID)
	}

	return runErr
}

package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/internal/scheduler"
	"github.com/hjkrause/alm-engine/internal/scheduler/jobs"
	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/database"
)

// scheduleCmd runs the periodic revaluation scheduler
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the periodic revaluation scheduler",
	Long: `Runs the configured book across all scenarios on a cron schedule
and stores each revaluation in Postgres.

Example:
  go run ./cmd/alm schedule
  go run ./cmd/alm schedule --cron "0 18 * * 1-5" --now`,
	RunE: runSchedule,
}

var (
	scheduleCron string
	scheduleNow  bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	registerBookFlags(scheduleCmd)
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron expression (default weekdays at 6 PM)")
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "run the revaluation immediately on startup")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	book, err := bookFromFlags()
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.NewRepository(db.Pool)
	if err := repo.Migrate(context.Background()); err != nil {
		return err
	}

	eng := engine.New(cfg.Engine, log)
	job := jobs.NewRevaluationJob(eng, book, repo, scheduleCron, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if scheduleNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.WithField("signal", sig.String()).Info("Shutting down scheduler")

	return nil
}

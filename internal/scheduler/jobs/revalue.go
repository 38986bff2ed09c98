// Package jobs holds the engine's scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// RevaluationJob reruns the configured book across all scenarios and
// persists the results, keeping a dated record of the funding position.
type RevaluationJob struct {
	engine   *engine.Engine
	book     engine.BookConfig
	repo     *store.Repository
	schedule string
	logger   *logger.Logger
}

// NewRevaluationJob creates the job. An empty schedule defaults to
// weekdays at 6 PM.
func NewRevaluationJob(
	eng *engine.Engine,
	book engine.BookConfig,
	repo *store.Repository,
	schedule string,
	log *logger.Logger,
) *RevaluationJob {
	if schedule == "" {
		schedule = "0 18 * * 1-5"
	}
	return &RevaluationJob{
		engine:   eng,
		book:     book,
		repo:     repo,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *RevaluationJob) Name() string {
	return "revaluation"
}

// Schedule returns the cron schedule
func (j *RevaluationJob) Schedule() string {
	return j.schedule
}

// Run projects the book under every scenario and stores the run.
func (j *RevaluationJob) Run(ctx context.Context) error {
	results, err := j.engine.RunMultiScenario(j.book)
	if err != nil {
		return fmt.Errorf("revaluation projection failed: %w", err)
	}

	run := &store.Run{
		Start: j.book.Today.String(),
		End:   j.book.Today.AddYears(j.book.HorizonYears).String(),
		Label: "scheduled revaluation",
	}
	if err := j.repo.SaveRun(ctx, run, results); err != nil {
		return fmt.Errorf("failed to persist revaluation: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":    run.ID.String(),
		"scenarios": run.Scenarios,
	}).Info("Revaluation stored")

	return nil
}

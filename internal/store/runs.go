// Package store persists multi-scenario projection runs to Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hjkrause/alm-engine/internal/projection"
)

// Run is one persisted multi-scenario projection run.
type Run struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Scenarios int       `json:"scenarios"`
	Label     string    `json:"label,omitempty"`
}

// ScenarioSeries is the JSON shape of one scenario's time series.
type ScenarioSeries struct {
	Scalar         float64   `json:"scalar"`
	Dates          []string  `json:"dates"`
	AssetsBOP      []float64 `json:"assets_bop"`
	LiabilitiesBOP []float64 `json:"liabilities_bop"`
	CashBOP        []float64 `json:"cash_bop"`
	SurplusBOP     []float64 `json:"surplus_bop"`
	EndingSurplus  float64   `json:"ending_surplus"`
}

// ScenarioRecord is one persisted scenario result.
type ScenarioRecord struct {
	RunID         uuid.UUID      `json:"run_id"`
	ScenarioIndex int            `json:"scenario_index"`
	Series        ScenarioSeries `json:"series"`
}

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("store: run not found")

// Repository handles run persistence. All run reads and writes go through
// this type.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a run repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate creates the run tables when they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS alm_runs (
			id         UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			start_date TEXT NOT NULL,
			end_date   TEXT NOT NULL,
			scenarios  INT NOT NULL,
			label      TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS alm_scenarios (
			run_id         UUID NOT NULL REFERENCES alm_runs(id) ON DELETE CASCADE,
			scenario_index INT NOT NULL,
			series         JSONB NOT NULL,
			PRIMARY KEY (run_id, scenario_index)
		);
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to migrate run tables: %w", err)
	}
	return nil
}

// ToSeries converts a projection result to its storage shape.
func ToSeries(res *projection.Result) ScenarioSeries {
	dates := make([]string, len(res.Dates))
	for i, d := range res.Dates {
		dates[i] = d.String()
	}
	return ScenarioSeries{
		Scalar:         res.Scalar,
		Dates:          dates,
		AssetsBOP:      res.AssetsBOP,
		LiabilitiesBOP: res.LiabilitiesBOP,
		CashBOP:        res.CashBOP,
		SurplusBOP:     res.SurplusBOP,
		EndingSurplus:  res.EndingSurplus,
	}
}

// SaveRun inserts a run and its scenario results. A nil entry in results
// (a failed scenario) is skipped; the run row still records the full
// scenario count.
func (r *Repository) SaveRun(ctx context.Context, run *Run, results []*projection.Result) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Scenarios = len(results)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO alm_runs (id, created_at, start_date, end_date, scenarios, label)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.CreatedAt, run.Start, run.End, run.Scenarios, run.Label)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, res := range results {
		if res == nil {
			continue
		}
		seriesJSON, err := json.Marshal(ToSeries(res))
		if err != nil {
			return fmt.Errorf("failed to marshal scenario %d: %w", i, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO alm_scenarios (run_id, scenario_index, series)
			VALUES ($1, $2, $3)
		`, run.ID, i, seriesJSON)
		if err != nil {
			return fmt.Errorf("failed to insert scenario %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run and its scenario results.
func (r *Repository) GetRun(ctx context.Context, id uuid.UUID) (*Run, []ScenarioRecord, error) {
	var run Run
	err := r.pool.QueryRow(ctx, `
		SELECT id, created_at, start_date, end_date, scenarios, label
		FROM alm_runs WHERE id = $1
	`, id).Scan(&run.ID, &run.CreatedAt, &run.Start, &run.End, &run.Scenarios, &run.Label)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrRunNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT scenario_index, series
		FROM alm_scenarios WHERE run_id = $1
		ORDER BY scenario_index
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get scenarios: %w", err)
	}
	defer rows.Close()

	var records []ScenarioRecord
	for rows.Next() {
		rec := ScenarioRecord{RunID: id}
		var seriesJSON []byte
		if err := rows.Scan(&rec.ScenarioIndex, &seriesJSON); err != nil {
			return nil, nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		if err := json.Unmarshal(seriesJSON, &rec.Series); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read scenarios: %w", err)
	}

	return &run, records, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, start_date, end_date, scenarios, label
		FROM alm_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.Start, &run.End, &run.Scenarios, &run.Label); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

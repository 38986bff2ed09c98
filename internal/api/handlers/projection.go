package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// ProjectionHandler runs multi-scenario projections on demand.
type ProjectionHandler struct {
	engine *engine.Engine
	repo   *store.Repository // optional; nil disables persistence
	logger *logger.Logger
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(eng *engine.Engine, repo *store.Repository, log *logger.Logger) *ProjectionHandler {
	return &ProjectionHandler{engine: eng, repo: repo, logger: log}
}

// runRequest overrides parts of the default book.
type runRequest struct {
	Today        string    `json:"today,omitempty"`
	HorizonYears int       `json:"horizon_years,omitempty"`
	Rates        []float64 `json:"rates,omitempty"`
	Label        string    `json:"label,omitempty"`
	Persist      bool      `json:"persist,omitempty"`
}

// Run projects the configured book, optionally under overridden scenario
// rates, and returns the per-scenario series.
// POST /api/projections/run
func (h *ProjectionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	today := date.New(2025, 5, 7)
	if req.Today != "" {
		parsed, err := date.Parse(req.Today)
		if err != nil {
			respondError(w, http.StatusBadRequest, "today must be YYYY-MM-DD")
			return
		}
		today = parsed
	}

	book := engine.DefaultBook(today)
	if req.HorizonYears > 0 {
		book.HorizonYears = req.HorizonYears
	}
	if len(req.Rates) > 0 {
		book.Rates = req.Rates
	}

	results, err := h.engine.RunMultiScenario(book)
	if err != nil {
		h.logger.WithError(err).Error("Projection run failed")
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	run := &store.Run{
		Start:     book.Today.String(),
		End:       book.Today.AddYears(book.HorizonYears).String(),
		Scenarios: len(results),
		Label:     req.Label,
	}

	if req.Persist && h.repo != nil {
		if err := h.repo.SaveRun(r.Context(), run, results); err != nil {
			h.logger.WithError(err).Error("Failed to persist run")
			respondError(w, http.StatusInternalServerError, "failed to persist run")
			return
		}
	}

	series := make([]*store.ScenarioSeries, len(results))
	for i, res := range results {
		if res != nil {
			s := store.ToSeries(res)
			series[i] = &s
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run":     run,
		"results": series,
	})
}

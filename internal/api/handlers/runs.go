package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// RunHandler serves stored multi-scenario runs.
type RunHandler struct {
	repo   *store.Repository
	logger *logger.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(repo *store.Repository, log *logger.Logger) *RunHandler {
	return &RunHandler{repo: repo, logger: log}
}

// List returns recent runs.
// GET /api/runs?limit=20
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.repo.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// Get returns one run with its scenario series.
// GET /api/runs/{id}
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, scenarios, err := h.repo.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get run")
		respondError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run":       run,
		"scenarios": scenarios,
	})
}

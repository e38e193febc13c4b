package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rohanjoshi-fynd/maze-game/store"
)

// RunsHandler serves run history from the store.
type RunsHandler struct {
	store *store.Store
}

// NewRunsHandler creates a run history handler.
func NewRunsHandler(st *store.Store) *RunsHandler {
	return &RunsHandler{store: st}
}

// Routes registers run history routes
func (h *RunsHandler) Routes(r chi.Router) {
	r.Route("/runs", func(sub chi.Router) {
		sub.Get("/", h.ListRuns)
		sub.Get("/{runID}/levels", h.ListLevels)
		sub.Get("/{runID}/levels/{level}/grid", h.GetLevelGrid)
	})
}

// ListRuns returns recent runs, newest first. ?limit= caps the page.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.store.RecentRuns(r.Context(), limit)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}

	totals, err := h.store.Totals(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to count runs")
		return
	}

	writeJSON(w, http.StatusOK, apiListResponse[store.RunSummary]{
		Items:      runs,
		PageSize:   limit,
		TotalItems: int64(totals.Runs),
	})
}

type levelsResponse struct {
	RunID  string                  `json:"run_id"`
	Levels []store.LevelCompletion `json:"levels"`
}

// ListLevels returns the cleared levels of one run in level order.
func (h *RunsHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	levels, err := h.store.LevelCompletions(r.Context(), runID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to list levels")
		return
	}
	if levels == nil {
		levels = []store.LevelCompletion{}
	}
	writeJSON(w, http.StatusOK, levelsResponse{RunID: runID, Levels: levels})
}

// GetLevelGrid returns the stored maze snapshot for one cleared level.
func (h *RunsHandler) GetLevelGrid(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 1 {
		errorJSON(w, http.StatusBadRequest, "level must be a positive integer")
		return
	}

	snap, err := h.store.GridSnapshot(r.Context(), runID, level)
	if errors.Is(err, store.ErrNotFound) {
		errorJSON(w, http.StatusNotFound, "no such completed level")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to load grid snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	game "github.com/rohanjoshi-fynd/maze-game/src"
)

// DebugHandler exposes development-only controls over live runs. Only
// mounted when dev mode is on.
type DebugHandler struct {
	gameServer *game.GameServer
}

// NewDebugHandler creates a debug handler.
func NewDebugHandler(gameServer *game.GameServer) *DebugHandler {
	return &DebugHandler{gameServer: gameServer}
}

// Routes registers debug routes
func (h *DebugHandler) Routes(r chi.Router) {
	r.Post("/debug/runs/{runID}/teleport-near-exit", h.TeleportNearExit)
}

type teleportResponse struct {
	RunID string    `json:"run_id"`
	Pos   game.Vec3 `json:"pos"`
}

// TeleportNearExit respawns a run's agent a few corridor cells away from the
// exit of its current maze.
func (h *DebugHandler) TeleportNearExit(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	pos, err := h.gameServer.DebugTeleportNearExit(runID)
	switch {
	case errors.Is(err, game.ErrRunNotFound):
		errorJSON(w, http.StatusNotFound, "no such run")
		return
	case errors.Is(err, game.ErrNoRespawnCandidates):
		errorJSON(w, http.StatusConflict, "no respawn candidates in this maze")
		return
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "teleport failed")
		return
	}
	writeJSON(w, http.StatusOK, teleportResponse{RunID: runID, Pos: pos})
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	game "github.com/rohanjoshi-fynd/maze-game/src"
	"github.com/rohanjoshi-fynd/maze-game/store"
)

// NewAPIRouter builds the /api router with middlewares and routes.
func NewAPIRouter(cfg Config, st *store.Store, gameServer *game.GameServer) chi.Router {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Run history, metrics, and dev-only debug controls
	rh := NewRunsHandler(st)
	mh := NewMetricsHandler(cfg, st, gameServer)
	if gameServer != nil {
		gameServer.SetSocketMonitor(mh)
	}
	r.Route("/v1", func(sub chi.Router) {
		// Health
		sub.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		rh.Routes(sub)
		mh.Routes(sub)
		if cfg.DevMode {
			NewDebugHandler(gameServer).Routes(sub)
		}
	})

	return r
}

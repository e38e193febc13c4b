package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/rohanjoshi-fynd/maze-game/api"
	"github.com/rohanjoshi-fynd/maze-game/config"
	game "github.com/rohanjoshi-fynd/maze-game/src"
	"github.com/rohanjoshi-fynd/maze-game/store"
)

func main() {
	// Optional .env for local development; deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := api.LoadConfig()

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatalf("tuning load error: %v", err)
	}
	gameplay := tuning.Resolve()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.Close()

	// Core game server
	s := game.NewGameServer(gameplay)
	s.SetRecorder(st)
	s.SetDevMode(cfg.DevMode)
	s.Run()

	r := chi.NewRouter()

	// This serves the static frontend application.
	r.Handle("/*", game.StaticFileServer(cfg.StaticDir, "/index.html"))

	// Mount REST API under /api
	r.Mount("/api", api.NewAPIRouter(cfg, st, s))
	// Websocket gameplay endpoint
	r.HandleFunc("/ws", s.HandleConnections)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Server started on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe:", err)
	}
}

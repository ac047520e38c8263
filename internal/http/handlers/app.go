package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"mediapress/internal/infra"
	"mediapress/internal/optimize"
	"mediapress/internal/storage"
)

// App bundles the dependencies the media handlers need.
type App struct {
	Config   *infra.Config
	Pipeline *optimize.Pipeline
	Store    *storage.DerivativeStore
	Logger   zerolog.Logger
}

func NewApp(cfg *infra.Config, pipeline *optimize.Pipeline, store *storage.DerivativeStore, logger zerolog.Logger) *App {
	return &App{Config: cfg, Pipeline: pipeline, Store: store, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]string{"error": code, "message": msg})
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mediapress/internal/http/handlers"
	"mediapress/internal/http/httpapi"
	"mediapress/internal/infra"
	"mediapress/internal/optimize"
	"mediapress/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Derivative store creates the media directories here, on startup,
	// never as an import side effect.
	store, err := storage.NewDerivativeStore(cfg.MediaRoot, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize derivative store")
	}

	pipeline := optimize.New(optimize.Config{}, store, logger)

	app := handlers.NewApp(cfg, pipeline, store, logger)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("media API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

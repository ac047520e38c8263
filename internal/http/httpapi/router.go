package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mediapress/internal/http/handlers"
	"mediapress/internal/middleware"
)

func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Config.AllowedOrigins))

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api/media", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
			r.Post("/upload", app.MediaUpload)
			r.Post("/optimize", app.MediaOptimize)
			r.Post("/remote", app.MediaRemote)
		})
		r.Get("/archive/{id}", app.MediaArchive)
		r.Get("/{format}/{filename}", app.MediaServe)
	})

	r.Route("/api/admin/media", func(r chi.Router) {
		r.Post("/cleanup", app.MediaCleanup)
	})

	return r
}

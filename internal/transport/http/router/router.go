package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blackout-app/backend/internal/config"
	"github.com/blackout-app/backend/internal/transport/http/handlers"
	authmw "github.com/blackout-app/backend/internal/transport/http/middleware"
)

func New(
	communities *handlers.CommunitiesHandler,
	photos *handlers.PhotosHandler,
	stream *handlers.StreamHandler,
	health *handlers.HealthHandler,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", health.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/blackout/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/communities", communities.Create)
			r.Get("/communities/{community_id}", communities.Get)
			r.Patch("/communities/{community_id}", communities.Update)
			r.Delete("/communities/{community_id}", communities.Delete)
			r.Post("/communities/{community_id}/join", communities.Join)
			r.Post("/communities/{community_id}/leave", communities.Leave)
			r.Get("/me/communities", communities.ListMine)

			r.Get("/communities/{community_id}/gallery", photos.Gallery)
			r.Get("/communities/{community_id}/stream", stream.Stream)

			r.Post("/photos/uploads", photos.NewUpload)
			r.Post("/photos", photos.Capture)
			r.Post("/photos/{photo_id}/attach", photos.Attach)
		})
	})

	return r
}

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-ulidgen/internal/config"
	"github.com/go-ulidgen/internal/pkg/logging"
	"github.com/go-ulidgen/internal/transport/http/handler"
	appmiddleware "github.com/go-ulidgen/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router. The rate limiter's cleanup stops with ctx.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	rl := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	healthH := handler.NewHealthHandler()
	ulidH := handler.NewULIDHandler(deps.Generator, logger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(rl.Limit)

			r.Get("/ulids", ulidH.List)
			r.Post("/ulids", ulidH.Create)
			r.Get("/ulids/{ulid}", ulidH.Get)
		})
	})

	return r
}

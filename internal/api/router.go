// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mbellan/socialpulse/internal/cache"
	"github.com/mbellan/socialpulse/internal/config"
	"github.com/mbellan/socialpulse/internal/database"
	"github.com/mbellan/socialpulse/internal/logging"
	"github.com/mbellan/socialpulse/internal/models"
	"github.com/mbellan/socialpulse/internal/pipeline"
)

// insightCacheTTL bounds how stale the behavior/content reports may be.
// The underlying analyses rescan the full lookback window per request,
// so identical requests within the window are served from memory.
const insightCacheTTL = 15 * time.Second

// Router holds the handler dependencies.
type Router struct {
	pipeline *pipeline.Pipeline
	db       *database.DB
	validate *validator.Validate
	log      zerolog.Logger

	behaviorCache *cache.Cache[models.BehaviorReport]
	contentCache  *cache.Cache[models.ContentReport]
}

// NewRouter builds the chi router over the pipeline and database.
func NewRouter(cfg *config.ServerConfig, p *pipeline.Pipeline, db *database.DB) http.Handler {
	rt := &Router{
		pipeline:      p,
		db:            db,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		log:           logging.With().Str("component", "api").Logger(),
		behaviorCache: cache.New[models.BehaviorReport](insightCacheTTL),
		contentCache:  cache.New[models.ContentReport](insightCacheTTL),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(rt.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.Post("/events/user", rt.trackUserEvent)
		r.Post("/events/content", rt.trackContentEvent)

		r.Get("/analytics/realtime", rt.realtimeMetrics)
		r.Get("/analytics/behavior", rt.behaviorInsights)
		r.Get("/analytics/content", rt.contentInsights)
		r.Get("/users/{userID}/activity", rt.userActivity)
	})

	r.Get("/health", rt.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(cfg *config.ServerConfig, p *pipeline.Pipeline, db *database.DB) *http.Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(cfg, p, db),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       2 * timeout,
	}
}

// requestLogger emits one structured line per request.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("request")
	})
}

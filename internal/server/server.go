// Package server exposes the prepared dataset as a read-only JSON API
// for dashboard frontends.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/oceania-analytics/tradedash/internal/config"
	"github.com/oceania-analytics/tradedash/internal/dataset"
)

// Server serves filtered views and aggregates over the prepared table.
type Server struct {
	cfg      config.ServerConfig
	provider *dataset.Provider
	limiter  *rate.Limiter
}

// New creates a Server backed by the given dataset provider.
func New(cfg config.ServerConfig, provider *dataset.Provider) *Server {
	return &Server{
		cfg:      cfg,
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// Router builds the handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(s.throttle)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/years", s.handleYears)
		r.Get("/countries", s.handleCountries)
		r.Get("/records", s.handleRecords)
		r.Get("/summary", s.handleSummary)
		r.Get("/trend", s.handleTrend)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}

	return nil
}

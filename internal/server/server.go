// Package server exposes the sync and enrichment pipelines over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/quantral/calendar-data/internal/enrich"
	"github.com/quantral/calendar-data/internal/metrics"
	"github.com/quantral/calendar-data/internal/model"
	"github.com/quantral/calendar-data/internal/orchestrator"
)

// Syncer runs the calendar pipelines on demand.
type Syncer interface {
	RunEarnings(ctx context.Context) (*model.RunSummary, []model.EarningsEvent)
	RunEconomic(ctx context.Context) (*model.RunSummary, []model.EconomicEvent)
	RunTranscripts(ctx context.Context, req orchestrator.TranscriptRequest) (*model.RunSummary, []model.Transcript)
}

// Enricher runs a logo enrichment pass.
type Enricher interface {
	Run(ctx context.Context) (*enrich.Summary, error)
}

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP front of the service.
type Server struct {
	syncer   Syncer
	enricher Enricher
	pinger   Pinger
	logger   *slog.Logger

	httpServer *http.Server
}

// New builds a Server listening on the given port.
func New(port int, syncer Syncer, enricher Enricher, pinger Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		syncer:   syncer,
		enricher: enricher,
		pinger:   pinger,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // sync runs block the request
	}
	return s
}

// Handler returns the route mux wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/sync/earnings", s.handleSyncEarnings)
	mux.HandleFunc("/api/sync/economic", s.handleSyncEconomic)
	mux.HandleFunc("/api/sync/transcripts", s.handleSyncTranscripts)
	mux.HandleFunc("/api/enrich/logos", s.handleEnrichLogos)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metrics.Handler())

	return withCORS(mux)
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/quantral/calendar-data/internal/model"
	"github.com/quantral/calendar-data/internal/orchestrator"
)

// maxResults caps the records echoed back in a sync response. The full
// set is persisted regardless.
const maxResults = 50

// response is the envelope every API endpoint returns.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Summary any    `json:"summary,omitempty"`
	Results any    `json:"results,omitempty"`
}

func (s *Server) handleSyncEarnings(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	summary, records := s.syncer.RunEarnings(r.Context())
	writeRunResponse(w, summary, truncate(records))
}

func (s *Server) handleSyncEconomic(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	summary, records := s.syncer.RunEconomic(r.Context())
	writeRunResponse(w, summary, truncate(records))
}

func (s *Server) handleSyncTranscripts(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req orchestrator.TranscriptRequest
	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, response{
				Success: false,
				Message: "malformed request body: " + err.Error(),
			})
			return
		}
	}

	summary, transcripts := s.syncer.RunTranscripts(r.Context(), req)
	writeRunResponse(w, summary, truncate(transcripts))
}

func (s *Server) handleEnrichLogos(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	summary, err := s.enricher.Run(r.Context())
	if err != nil {
		s.logger.Error("logo enrichment failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, response{
			Success: false,
			Message: "logo enrichment failed: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "logo enrichment complete",
		Summary: summary,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Components: map[string]any{},
	}

	if err := s.pinger.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Components["postgres"] = map[string]string{
			"status": "disconnected",
			"error":  err.Error(),
		}
	} else {
		health.Components["postgres"] = "connected"
	}

	code := http.StatusOK
	if health.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// writeRunResponse maps a run summary to the envelope and status code:
// 404 when the run produced nothing and hit no errors, 500 when it
// failed outright, 200 otherwise (partial failures included).
func writeRunResponse(w http.ResponseWriter, summary *model.RunSummary, results any) {
	switch {
	case summary.NoData():
		writeJSON(w, http.StatusNotFound, response{
			Success: false,
			Message: "no data",
			Summary: summary,
		})
	case summary.State == model.RunFailed:
		writeJSON(w, http.StatusInternalServerError, response{
			Success: false,
			Message: "sync failed",
			Summary: summary,
		})
	default:
		msg := "sync complete"
		if summary.State == model.RunPartiallyFailed {
			msg = "sync complete with provider failures"
		}
		writeJSON(w, http.StatusOK, response{
			Success: true,
			Message: msg,
			Summary: summary,
			Results: results,
		})
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, response{
			Success: false,
			Message: "method not allowed",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// truncate bounds the echoed result set.
func truncate[T any](records []T) []T {
	if len(records) > maxResults {
		return records[:maxResults]
	}
	return records
}

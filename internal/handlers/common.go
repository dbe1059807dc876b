package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/proplines/lines-api/internal/analysis"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres":   h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch.Ping(ctx) == nil,
		"redis":      h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// analysisError maps the core error taxonomy onto HTTP statuses. Fatal
// errors surface as they are; anything unexpected is a 500 with the detail
// kept in the logs.
func (h *Handler) analysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrInsufficientData):
		h.errorResponse(w, http.StatusNotFound, "No games recorded for this player and metric")
	case errors.Is(err, analysis.ErrNoMatchupHistory):
		h.errorResponse(w, http.StatusNotFound, "No games recorded against this opponent")
	case errors.Is(err, analysis.ErrPlayerUnavailable):
		h.errorResponse(w, http.StatusConflict, "Player is ruled OUT; no line suggested")
	case errors.Is(err, analysis.ErrUnsupportedConfidence):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw("Analysis request failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Analysis failed")
	}
}

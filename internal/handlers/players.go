package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

// GetHistory returns a player's recent archived observations
// @Summary Get raw observation history
// @Tags Players
// @Produce json
// @Param playerID path string true "Player ID"
// @Param metric query string true "Metric name"
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {array} models.Observation
// @Router /players/{playerID}/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	metric := r.URL.Query().Get("metric")
	if playerID == "" || metric == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID and metric are required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	history, err := h.history.RecentHistory(r.Context(), playerID, metric, limit)
	if err != nil {
		h.logger.Errorw("Failed to query observation history", "error", err, "player", playerID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to query history")
		return
	}

	h.jsonResponse(w, http.StatusOK, history)
}

// GetInjuryStatus returns the player's current injury designation
// @Summary Get injury status
// @Tags Players
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} models.InjuryStatus
// @Router /players/{playerID}/injury [get]
func (h *Handler) GetInjuryStatus(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID is required")
		return
	}

	status, err := h.injuries.GetStatus(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, analysis.ErrUnknownPlayer) {
			// Untracked players read as ACTIVE, same fail-open rule the
			// suggester applies.
			h.jsonResponse(w, http.StatusOK, map[string]interface{}{
				"status":  models.InjuryStatus{PlayerID: playerID, State: models.InjuryActive},
				"tracked": false,
			})
			return
		}
		h.logger.Errorw("Injury feed lookup failed", "error", err, "player", playerID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to query injury status")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"tracked": true,
	})
}

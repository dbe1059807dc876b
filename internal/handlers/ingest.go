package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proplines/lines-api/internal/models"
)

// gameDateLayouts are accepted ingest date formats, checked in order.
var gameDateLayouts = []string{"2006-01-02", time.RFC3339}

// IngestObservations handles POST /api/v1/ingest/observations
// @Summary Ingest Game Observations
// @Description Accepts newline-separated JSON observations from data feeds
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.ObservationPayload true "Observations"
// @Success 202 {object} map[string]interface{} "Accepted"
// @Failure 413 {object} map[string]string "Body Too Large"
// @Router /ingest/observations [post]
func (h *Handler) IngestObservations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	processed := 0
	skipped := 0
	for i, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var payload models.ObservationPayload
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			h.logger.Warnw("Failed to unmarshal observation in batch", "error", err, "lineNum", i)
			skipped++
			continue
		}

		if err := h.validator.Struct(&payload); err != nil {
			h.logger.Warnw("Validation failed for observation", "error", err, "lineNum", i)
			skipped++
			continue
		}

		gameDate, err := parseGameDate(payload.GameDate)
		if err != nil {
			h.logger.Warnw("Unparseable game date", "date", payload.GameDate, "lineNum", i)
			skipped++
			continue
		}

		obs := models.Observation{
			ID:         uuid.New(),
			PlayerID:   payload.PlayerID,
			Metric:     payload.Metric,
			OpponentID: payload.OpponentID,
			GameDate:   gameDate,
			Value:      payload.Value,
			RecordedAt: time.Now().UTC(),
		}

		if !h.pool.Enqueue(obs) {
			h.logger.Warn("Ingestion queue unavailable, dropping remaining observations in batch")
			break
		}
		processed++
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"status":    "accepted",
		"processed": processed,
		"skipped":   skipped,
	})
}

func parseGameDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range gameDateLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

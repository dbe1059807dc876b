package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/proplines/lines-api/internal/analysis"
)

// GetSuggestedLine returns a confidence-bounded line suggestion
// @Summary Suggest a line for a player metric
// @Tags Lines
// @Produce json
// @Param playerID path string true "Player ID"
// @Param metric query string true "Metric name"
// @Param opponent query string false "Opponent ID for matchup adjustment"
// @Param ci query number false "Confidence interval (default 0.80)"
// @Param games_back query int false "Long window size (default 10)"
// @Success 200 {object} models.LineSuggestion
// @Failure 404 {object} map[string]string "No games recorded"
// @Failure 409 {object} map[string]string "Player ruled OUT"
// @Router /players/{playerID}/line [get]
func (h *Handler) GetSuggestedLine(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	metric := r.URL.Query().Get("metric")
	if playerID == "" || metric == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID and metric are required")
		return
	}

	params := analysis.SuggestParams{
		PlayerID:   playerID,
		Metric:     metric,
		OpponentID: r.URL.Query().Get("opponent"),
	}

	if raw := r.URL.Query().Get("ci"); raw != "" {
		ci, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "ci must be a number")
			return
		}
		params.ConfidenceInterval = ci
	}
	if raw := r.URL.Query().Get("games_back"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "games_back must be a positive integer")
			return
		}
		params.GamesBack = n
	}

	suggestion, err := h.lines.SuggestLine(r.Context(), params)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, suggestion)
}

// GetTrend returns the short/long window trend classification
// @Summary Get player trend
// @Tags Lines
// @Produce json
// @Param playerID path string true "Player ID"
// @Param metric query string true "Metric name"
// @Success 200 {object} models.TrendReport
// @Router /players/{playerID}/trend [get]
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	metric := r.URL.Query().Get("metric")
	if playerID == "" || metric == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID and metric are required")
		return
	}

	report, err := h.lines.PlayerTrend(r.Context(), playerID, metric)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// GetMatchup returns opponent-specific statistics
// @Summary Get matchup statistics
// @Tags Lines
// @Produce json
// @Param playerID path string true "Player ID"
// @Param metric query string true "Metric name"
// @Param opponent query string true "Opponent ID"
// @Success 200 {object} models.MatchupStats
// @Failure 404 {object} map[string]string "No matchup history"
// @Router /players/{playerID}/matchup [get]
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	metric := r.URL.Query().Get("metric")
	opponent := r.URL.Query().Get("opponent")
	if playerID == "" || metric == "" || opponent == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID, metric and opponent are required")
		return
	}

	matchup, err := h.lines.MatchupReport(r.Context(), playerID, metric, opponent)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, matchup)
}

// GetRecommendation returns an over/under call against a market line
// @Summary Recommend over/under against a market line
// @Tags Lines
// @Produce json
// @Param playerID path string true "Player ID"
// @Param metric query string true "Metric name"
// @Param line query number true "Market line"
// @Param opponent query string false "Opponent ID"
// @Success 200 {object} models.Recommendation
// @Router /players/{playerID}/recommendation [get]
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	metric := r.URL.Query().Get("metric")
	if playerID == "" || metric == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerID and metric are required")
		return
	}

	line, err := strconv.ParseFloat(r.URL.Query().Get("line"), 64)
	if err != nil || line <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "line must be a positive number")
		return
	}

	rec, err := h.lines.Recommend(r.Context(), analysis.RecommendParams{
		PlayerID:   playerID,
		Metric:     metric,
		OpponentID: r.URL.Query().Get("opponent"),
		Line:       line,
	})
	if err != nil {
		h.analysisError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, rec)
}

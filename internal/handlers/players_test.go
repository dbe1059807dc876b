package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

func newPlayerRequest(target, playerID string) *http.Request {
	r := httptest.NewRequest("GET", target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("playerID", playerID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetHistory(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockHistorySource)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Happy Path",
			query: "?metric=points",
			mockSetup: func(m *MockHistorySource) {
				m.RecentHistoryFunc = func(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error) {
					return []models.Observation{{PlayerID: playerID, Metric: metric, Value: 33}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"value":33`,
		},
		{
			name:           "Missing Metric",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Limit",
			query:          "?metric=points&limit=-5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Archive Error",
			query: "?metric=points",
			mockSetup: func(m *MockHistorySource) {
				m.RecentHistoryFunc = func(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error) {
					return nil, errors.New("clickhouse unavailable")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockHistory := &MockHistorySource{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockHistory)
			}
			h := &Handler{history: mockHistory, logger: logger.Sugar()}

			r := newPlayerRequest("/players/player-23/history"+tt.query, "player-23")
			w := httptest.NewRecorder()
			h.GetHistory(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetHistoryForwardsLimit(t *testing.T) {
	var gotLimit int
	mockHistory := &MockHistorySource{
		RecentHistoryFunc: func(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error) {
			gotLimit = limit
			return []models.Observation{}, nil
		},
	}
	h := &Handler{history: mockHistory, logger: zap.NewNop().Sugar()}

	r := newPlayerRequest("/players/player-23/history?metric=points&limit=5", "player-23")
	w := httptest.NewRecorder()
	h.GetHistory(w, r)

	if gotLimit != 5 {
		t.Errorf("limit = %d, want 5", gotLimit)
	}
}

func TestGetInjuryStatus(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		mockSetup      func(*MockInjuryFeed)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Tracked Player",
			mockSetup: func(m *MockInjuryFeed) {
				m.GetStatusFunc = func(ctx context.Context, playerID string) (models.InjuryStatus, error) {
					return models.InjuryStatus{PlayerID: playerID, State: models.InjuryQuestionable}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tracked":true`,
		},
		{
			name: "Untracked Reads Active",
			mockSetup: func(m *MockInjuryFeed) {
				m.GetStatusFunc = func(ctx context.Context, playerID string) (models.InjuryStatus, error) {
					return models.InjuryStatus{}, fmt.Errorf("%w: %s", analysis.ErrUnknownPlayer, playerID)
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tracked":false`,
		},
		{
			name: "Feed Error",
			mockSetup: func(m *MockInjuryFeed) {
				m.GetStatusFunc = func(ctx context.Context, playerID string) (models.InjuryStatus, error) {
					return models.InjuryStatus{}, errors.New("redis timeout")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFeed := &MockInjuryFeed{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockFeed)
			}
			h := &Handler{injuries: mockFeed, logger: logger.Sugar()}

			r := newPlayerRequest("/players/player-23/injury", "player-23")
			w := httptest.NewRecorder()
			h.GetInjuryStatus(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

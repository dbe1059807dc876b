package handlers

import (
	"context"
	"sync"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

// MockLineService implements analysis.LineService for testing
type MockLineService struct {
	SuggestLineFunc   func(ctx context.Context, p analysis.SuggestParams) (*models.LineSuggestion, error)
	RecommendFunc     func(ctx context.Context, p analysis.RecommendParams) (*models.Recommendation, error)
	PlayerTrendFunc   func(ctx context.Context, playerID, metric string) (*models.TrendReport, error)
	MatchupReportFunc func(ctx context.Context, playerID, metric, opponentID string) (*models.MatchupStats, error)
}

func (m *MockLineService) SuggestLine(ctx context.Context, p analysis.SuggestParams) (*models.LineSuggestion, error) {
	if m.SuggestLineFunc != nil {
		return m.SuggestLineFunc(ctx, p)
	}
	return &models.LineSuggestion{}, nil
}

func (m *MockLineService) Recommend(ctx context.Context, p analysis.RecommendParams) (*models.Recommendation, error) {
	if m.RecommendFunc != nil {
		return m.RecommendFunc(ctx, p)
	}
	return &models.Recommendation{}, nil
}

func (m *MockLineService) PlayerTrend(ctx context.Context, playerID, metric string) (*models.TrendReport, error) {
	if m.PlayerTrendFunc != nil {
		return m.PlayerTrendFunc(ctx, playerID, metric)
	}
	return &models.TrendReport{}, nil
}

func (m *MockLineService) MatchupReport(ctx context.Context, playerID, metric, opponentID string) (*models.MatchupStats, error) {
	if m.MatchupReportFunc != nil {
		return m.MatchupReportFunc(ctx, playerID, metric, opponentID)
	}
	return &models.MatchupStats{}, nil
}

// MockIngestQueue implements IngestQueue for testing
type MockIngestQueue struct {
	mu       sync.Mutex
	enqueued []models.Observation

	EnqueueFunc func(obs models.Observation) bool
}

func (m *MockIngestQueue) Enqueue(obs models.Observation) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(obs)
	}
	m.mu.Lock()
	m.enqueued = append(m.enqueued, obs)
	m.mu.Unlock()
	return true
}

func (m *MockIngestQueue) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enqueued)
}

func (m *MockIngestQueue) Enqueued() []models.Observation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Observation, len(m.enqueued))
	copy(out, m.enqueued)
	return out
}

// MockInjuryFeed implements analysis.InjuryFeed for testing
type MockInjuryFeed struct {
	GetStatusFunc func(ctx context.Context, playerID string) (models.InjuryStatus, error)
}

func (m *MockInjuryFeed) GetStatus(ctx context.Context, playerID string) (models.InjuryStatus, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, playerID)
	}
	return models.InjuryStatus{PlayerID: playerID, State: models.InjuryActive}, nil
}

// MockHistorySource implements HistorySource for testing
type MockHistorySource struct {
	RecentHistoryFunc func(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error)
}

func (m *MockHistorySource) RecentHistory(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error) {
	if m.RecentHistoryFunc != nil {
		return m.RecentHistoryFunc(ctx, playerID, metric, limit)
	}
	return []models.Observation{}, nil
}

package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/proplines/lines-api/internal/models"
)

func TestRecommendPicks(t *testing.T) {
	tests := []struct {
		name           string
		line           float64
		wantPick       models.Pick
		wantConfidence models.ConfidenceTier
	}{
		{
			// Short mean 30.2 sits 20.8% over the line and the trend agrees.
			name: "Over With Agreeing Trend",
			line: 25, wantPick: models.PickOver, wantConfidence: models.ConfidenceHigh,
		},
		{
			// 13.7% under the line, but form is rising: the trend disagrees.
			name: "Under Against The Trend",
			line: 35, wantPick: models.PickUnder, wantConfidence: models.ConfidenceMedium,
		},
		{
			name: "Too Close To Call",
			line: 30, wantPick: models.PickAvoid, wantConfidence: models.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSuggester(makeLog(seasonValues, seasonOpponents), nil)

			got, err := s.Recommend(context.Background(), RecommendParams{
				PlayerID: "player-23", Metric: "points", Line: tt.line,
			})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got.Pick != tt.wantPick {
				t.Errorf("Pick = %s, want %s", got.Pick, tt.wantPick)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %s, want %s", got.Confidence, tt.wantConfidence)
			}
			if got.Line != tt.line {
				t.Errorf("Line = %v, want %v", got.Line, tt.line)
			}
		})
	}
}

func TestRecommendTrendStrength(t *testing.T) {
	s := newTestSuggester(makeLog(seasonValues, seasonOpponents), nil)

	got, err := s.Recommend(context.Background(), RecommendParams{
		PlayerID: "player-23", Metric: "points", Line: 25,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// (30.2 - 26.8) / 4.131182.
	if !almostEqual(got.TrendStrength, 0.823008, 1e-3) {
		t.Errorf("TrendStrength = %v, want ~0.823", got.TrendStrength)
	}
	if got.Trend != models.TrendUp {
		t.Errorf("Trend = %s, want UP", got.Trend)
	}
}

func TestRecommendOpponentPromotesConfidence(t *testing.T) {
	// UNDER against a rising trend starts MEDIUM; an improving matchup
	// against BOS promotes it.
	s := newTestSuggester(makeLog(seasonValues, seasonOpponents), nil)

	got, err := s.Recommend(context.Background(), RecommendParams{
		PlayerID: "player-23", Metric: "points", OpponentID: "BOS", Line: 35,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.Pick != models.PickUnder {
		t.Fatalf("Pick = %s, want UNDER", got.Pick)
	}
	if got.Confidence != models.ConfidenceHigh {
		t.Errorf("Confidence = %s, want HIGH after matchup promotion", got.Confidence)
	}
	if got.VsOpponent == nil || got.VsOpponent.Trend != models.TrendUp {
		t.Errorf("VsOpponent = %+v, want BOS trending UP", got.VsOpponent)
	}
}

func TestRecommendOpponentDemotesConfidence(t *testing.T) {
	// Overall form is rising, but production against DAL keeps falling:
	// the OVER call loses a tier.
	values := []float64{10, 30, 12, 28, 14, 26, 16, 24, 30, 32}
	opponents := []string{"", "DAL", "", "DAL", "", "DAL", "", "DAL", "", ""}
	s := newTestSuggester(makeLog(values, opponents), nil)

	got, err := s.Recommend(context.Background(), RecommendParams{
		PlayerID: "player-23", Metric: "points", OpponentID: "DAL", Line: 20,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.Pick != models.PickOver {
		t.Fatalf("Pick = %s, want OVER", got.Pick)
	}
	if got.VsOpponent == nil || got.VsOpponent.Trend != models.TrendDown {
		t.Fatalf("VsOpponent = %+v, want DAL trending DOWN", got.VsOpponent)
	}
	if got.Confidence != models.ConfidenceMedium {
		t.Errorf("Confidence = %s, want MEDIUM after matchup demotion", got.Confidence)
	}
}

func TestRecommendUnknownOpponentIgnored(t *testing.T) {
	s := newTestSuggester(makeLog(seasonValues, seasonOpponents), nil)

	got, err := s.Recommend(context.Background(), RecommendParams{
		PlayerID: "player-23", Metric: "points", OpponentID: "SEA", Line: 25,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.VsOpponent != nil {
		t.Errorf("VsOpponent = %+v, want nil for an opponent never faced", got.VsOpponent)
	}
	if got.Pick != models.PickOver {
		t.Errorf("Pick = %s, want OVER", got.Pick)
	}
}

func TestRecommendRejectsNonPositiveLine(t *testing.T) {
	s := newTestSuggester(makeLog(seasonValues, seasonOpponents), nil)

	for _, line := range []float64{0, -12.5} {
		if _, err := s.Recommend(context.Background(), RecommendParams{
			PlayerID: "player-23", Metric: "points", Line: line,
		}); err == nil {
			t.Errorf("Recommend(line=%v) expected error, got nil", line)
		}
	}
}

func TestRecommendEmptyLog(t *testing.T) {
	s := newTestSuggester(models.GameLog{}, nil)

	_, err := s.Recommend(context.Background(), RecommendParams{
		PlayerID: "ghost", Metric: "points", Line: 20,
	})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Recommend() error = %v, want ErrInsufficientData", err)
	}
}

package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/proplines/lines-api/internal/models"
)

const (
	// lineMargin is how far the short-window mean must sit from the market
	// line, as a fraction of the line, before a directional pick is made.
	lineMargin = 0.10

	// strengthThreshold is the stddev-normalized short/long gap that
	// separates a real trend from noise.
	strengthThreshold = 0.2
)

// RecommendParams carries one over/under request against a market line.
type RecommendParams struct {
	PlayerID   string
	Metric     string
	OpponentID string
	Line       float64
}

// Recommend makes an over/under call against a caller-supplied market
// line. Trend strength is the short/long mean gap normalized by the
// long-window deviation; a pick needs the short mean at least 10% away
// from the line, otherwise the call is AVOID. Matchup trend against the
// named opponent shifts the confidence tier by one step.
func (s *Suggester) Recommend(ctx context.Context, p RecommendParams) (*models.Recommendation, error) {
	if p.Line <= 0 {
		return nil, fmt.Errorf("line must be positive, got %v", p.Line)
	}

	log, err := s.store.Query(ctx, p.PlayerID, p.Metric)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("%w: player %s metric %s", ErrInsufficientData, p.PlayerID, p.Metric)
	}

	short, err := Window(log, DefaultShortWindow)
	if err != nil {
		return nil, err
	}
	long, err := Window(log, DefaultLongWindow)
	if err != nil {
		return nil, err
	}

	var strength float64
	if long.StdDev != 0 {
		strength = (short.Mean - long.Mean) / long.StdDev
	}

	direction := models.TrendStable
	switch {
	case strength > strengthThreshold:
		direction = models.TrendUp
	case strength < -strengthThreshold:
		direction = models.TrendDown
	}

	var vsOpponent *models.MatchupSummary
	if p.OpponentID != "" {
		matchup, err := AnalyzeMatchup(log, p.OpponentID)
		if err != nil && !errors.Is(err, ErrNoMatchupHistory) {
			return nil, fmt.Errorf("matchup analysis: %w", err)
		}
		if err == nil {
			vsOpponent = &models.MatchupSummary{
				OpponentID:      matchup.OpponentID,
				Average:         matchup.Average,
				GamesPlayed:     matchup.GamesPlayed,
				LastPerformance: matchup.LastPerformance,
				LastMatchupDate: matchup.LastMatchupDate,
				Trend:           matchup.Trend.Direction,
			}
		}
	}

	rec := &models.Recommendation{
		PlayerID:      p.PlayerID,
		Metric:        p.Metric,
		Line:          p.Line,
		ShortMean:     short.Mean,
		LongMean:      long.Mean,
		TrendStrength: strength,
		Trend:         direction,
		VsOpponent:    vsOpponent,
	}

	margin := (short.Mean - p.Line) / p.Line
	if margin > lineMargin {
		rec.Pick = models.PickOver
		rec.Confidence = pickConfidence(strength > 0, vsOpponent)
	} else if margin < -lineMargin {
		rec.Pick = models.PickUnder
		rec.Confidence = pickConfidence(strength < 0, vsOpponent)
	} else {
		rec.Pick = models.PickAvoid
		rec.Confidence = models.ConfidenceLow
	}

	return rec, nil
}

// pickConfidence starts HIGH when the trend agrees with the pick, MEDIUM
// otherwise, then lets opponent history move it one tier: an improving
// matchup promotes MEDIUM, a declining one demotes HIGH.
func pickConfidence(trendAgrees bool, vsOpponent *models.MatchupSummary) models.ConfidenceTier {
	confidence := models.ConfidenceMedium
	if trendAgrees {
		confidence = models.ConfidenceHigh
	}

	if vsOpponent != nil {
		switch {
		case vsOpponent.Trend == models.TrendUp && confidence == models.ConfidenceMedium:
			confidence = models.ConfidenceHigh
		case vsOpponent.Trend == models.TrendDown && confidence == models.ConfidenceHigh:
			confidence = models.ConfidenceMedium
		}
	}

	return confidence
}

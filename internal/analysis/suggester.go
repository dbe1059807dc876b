package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/proplines/lines-api/internal/models"
)

const (
	// DefaultShortWindow and DefaultLongWindow are the games-back spans
	// behind every trend and blend computation.
	DefaultShortWindow = 5
	DefaultLongWindow  = 10

	// DefaultConfidence is the two-tailed interval used when the caller
	// does not ask for one.
	DefaultConfidence = 0.80

	// Blend weights. Fixed and documented, not learned: recent form
	// carries more weight than the long baseline, and matchup history
	// blends in weight-space rather than stacking multiplicatively so the
	// final number stays within an explainable range.
	longWeight    = 0.4
	shortWeight   = 0.6
	matchupWeight = 0.3

	// Recent-form label thresholds relative to the long-window mean.
	hotRatio  = 1.10
	coldRatio = 0.90

	// lineSanityFactor caps a suggested line at this multiple of the best
	// game on record, guarding against runaway blends.
	lineSanityFactor = 1.5
)

// zTable holds two-tailed z-scores for the supported confidence levels.
var zTable = map[float64]float64{
	0.80: 1.282,
	0.85: 1.440,
	0.90: 1.645,
	0.95: 1.960,
	0.99: 2.576,
}

// GameLogStore is the read side of the observation store.
type GameLogStore interface {
	Query(ctx context.Context, playerID, metric string) (models.GameLog, error)
}

// InjuryFeed supplies externally tracked injury statuses. Implementations
// return ErrUnknownPlayer for players they do not track.
type InjuryFeed interface {
	GetStatus(ctx context.Context, playerID string) (models.InjuryStatus, error)
}

// LineService is the externally invoked surface of the analysis core.
type LineService interface {
	SuggestLine(ctx context.Context, p SuggestParams) (*models.LineSuggestion, error)
	Recommend(ctx context.Context, p RecommendParams) (*models.Recommendation, error)
	PlayerTrend(ctx context.Context, playerID, metric string) (*models.TrendReport, error)
	MatchupReport(ctx context.Context, playerID, metric, opponentID string) (*models.MatchupStats, error)
}

// Suggester merges window statistics, trend classification, matchup
// history and injury adjustment into line suggestions. It is stateless
// across requests; every suggestion is computed fresh from the store.
type Suggester struct {
	store    GameLogStore
	injuries InjuryFeed
	logger   *zap.SugaredLogger
}

func NewSuggester(store GameLogStore, injuries InjuryFeed, logger *zap.Logger) *Suggester {
	return &Suggester{
		store:    store,
		injuries: injuries,
		logger:   logger.Sugar(),
	}
}

// SuggestParams carries one suggestion request. OpponentID is optional;
// zero ConfidenceInterval and GamesBack take the defaults.
type SuggestParams struct {
	PlayerID           string
	Metric             string
	OpponentID         string
	ConfidenceInterval float64
	GamesBack          int
}

// SuggestLine computes a suggested line with a confidence interval.
//
// The blend is 0.4 x long-window mean + 0.6 x short-window mean; matchup
// history, when present, shifts that toward the opponent average at weight
// 0.3; the injury multiplier applies last. Missing matchup history and an
// untracked injury status degrade the output, they never fail it. An OUT
// status always fails it.
func (s *Suggester) SuggestLine(ctx context.Context, p SuggestParams) (*models.LineSuggestion, error) {
	if p.ConfidenceInterval == 0 {
		p.ConfidenceInterval = DefaultConfidence
	}
	if p.GamesBack == 0 {
		p.GamesBack = DefaultLongWindow
	}

	z, ok := zTable[p.ConfidenceInterval]
	if !ok {
		return nil, fmt.Errorf("%w: %.2f", ErrUnsupportedConfidence, p.ConfidenceInterval)
	}

	log, err := s.store.Query(ctx, p.PlayerID, p.Metric)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("%w: player %s metric %s", ErrInsufficientData, p.PlayerID, p.Metric)
	}

	// The injury lookup is the only collaborator call left; matchup
	// filtering is pure but can walk a long log, so both run concurrently.
	var (
		status  models.InjuryStatus
		matchup *models.MatchupStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.injuries.GetStatus(gctx, p.PlayerID)
		if err != nil {
			if errors.Is(err, ErrUnknownPlayer) {
				// Fail open: untracked players are assumed ACTIVE rather
				// than blocking the suggestion.
				s.logger.Debugw("player not tracked by injury feed, assuming active", "player", p.PlayerID)
				status = models.InjuryStatus{PlayerID: p.PlayerID, State: models.InjuryActive}
				return nil
			}
			return fmt.Errorf("injury status: %w", err)
		}
		status = st
		return nil
	})
	if p.OpponentID != "" {
		g.Go(func() error {
			m, err := AnalyzeMatchup(log, p.OpponentID)
			if err != nil {
				if errors.Is(err, ErrNoMatchupHistory) {
					s.logger.Debugw("no matchup history, using global stats only",
						"player", p.PlayerID, "opponent", p.OpponentID)
					return nil
				}
				return fmt.Errorf("matchup analysis: %w", err)
			}
			matchup = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multiplier, err := InjuryMultiplier(status)
	if err != nil {
		return nil, err
	}

	short, err := Window(log, DefaultShortWindow)
	if err != nil {
		return nil, err
	}
	long, err := Window(log, p.GamesBack)
	if err != nil {
		return nil, err
	}
	trend := ClassifyTrend(short, long)

	factors := []string{
		fmt.Sprintf("blend: %.0f%% last-%d mean (%.2f) + %.0f%% last-%d mean (%.2f)",
			shortWeight*100, short.Count, short.Mean, longWeight*100, long.Count, long.Mean),
	}

	line := longWeight*long.Mean + shortWeight*short.Mean

	var vsOpponent *models.MatchupSummary
	if matchup != nil {
		line = (1-matchupWeight)*line + matchupWeight*matchup.Average
		factors = append(factors, fmt.Sprintf("matchup vs %s blended at %.0f%% (avg %.2f over %d games)",
			matchup.OpponentID, matchupWeight*100, matchup.Average, matchup.GamesPlayed))
		vsOpponent = &models.MatchupSummary{
			OpponentID:      matchup.OpponentID,
			Average:         matchup.Average,
			GamesPlayed:     matchup.GamesPlayed,
			LastPerformance: matchup.LastPerformance,
			LastMatchupDate: matchup.LastMatchupDate,
			Trend:           matchup.Trend.Direction,
		}
	} else if p.OpponentID != "" {
		factors = append(factors, fmt.Sprintf("no history vs %s, matchup adjustment skipped", p.OpponentID))
	}

	line *= multiplier
	if multiplier != 1.0 {
		factors = append(factors, fmt.Sprintf("injury adjustment x%.2f (%s)", multiplier, status.State))
	}

	// Sanity bound: a blend can never suggest more than 1.5x the best game
	// on record, and never below zero.
	if bound := log.MaxValue() * lineSanityFactor; line > bound {
		factors = append(factors, fmt.Sprintf("capped at %.2f (1.5x best game)", bound))
		line = bound
	}
	if line < 0 {
		line = 0
	}

	halfWidth := z * long.StdDev

	return &models.LineSuggestion{
		PlayerID:            p.PlayerID,
		Metric:              p.Metric,
		SuggestedLine:       line,
		IntervalLow:         line - halfWidth,
		IntervalHigh:        line + halfWidth,
		Confidence:          p.ConfidenceInterval,
		RecentForm:          formLabel(short.Mean, long.Mean),
		Trend:               trend,
		ShortWindowMean:     short.Mean,
		LongWindowMean:      long.Mean,
		RecentValues:        log.Last(DefaultShortWindow).Values(),
		InjuryMultiplier:    multiplier,
		VsOpponent:          vsOpponent,
		ContributingFactors: factors,
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

// PlayerTrend classifies a player's current form from the default windows.
func (s *Suggester) PlayerTrend(ctx context.Context, playerID, metric string) (*models.TrendReport, error) {
	log, err := s.store.Query(ctx, playerID, metric)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("%w: player %s metric %s", ErrInsufficientData, playerID, metric)
	}

	short, err := Window(log, DefaultShortWindow)
	if err != nil {
		return nil, err
	}
	long, err := Window(log, DefaultLongWindow)
	if err != nil {
		return nil, err
	}

	return &models.TrendReport{
		PlayerID: playerID,
		Metric:   metric,
		Short:    short,
		Long:     long,
		Trend:    ClassifyTrend(short, long),
	}, nil
}

// MatchupReport returns a player's full matchup statistics against one
// opponent. ErrNoMatchupHistory propagates here: unlike SuggestLine there
// is nothing to fall back to.
func (s *Suggester) MatchupReport(ctx context.Context, playerID, metric, opponentID string) (*models.MatchupStats, error) {
	log, err := s.store.Query(ctx, playerID, metric)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("%w: player %s metric %s", ErrInsufficientData, playerID, metric)
	}

	matchup, err := AnalyzeMatchup(log, opponentID)
	if err != nil {
		return nil, err
	}
	return &matchup, nil
}

func formLabel(shortMean, longMean float64) models.FormLabel {
	if longMean == 0 {
		return models.FormNeutral
	}
	switch {
	case shortMean > longMean*hotRatio:
		return models.FormHot
	case shortMean < longMean*coldRatio:
		return models.FormCold
	default:
		return models.FormNeutral
	}
}

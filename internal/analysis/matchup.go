package analysis

import (
	"fmt"

	"github.com/proplines/lines-api/internal/models"
)

// AnalyzeMatchup computes opponent-specific statistics over the
// subsequence of a log played against one opponent. Zero matching games is
// ErrNoMatchupHistory, distinct from ErrInsufficientData: "never played
// them" is a fallback case, not a failure of the whole request.
func AnalyzeMatchup(log models.GameLog, opponentID string) (models.MatchupStats, error) {
	games := log.FilterOpponent(opponentID)
	if len(games) == 0 {
		return models.MatchupStats{}, fmt.Errorf("%w: opponent %s", ErrNoMatchupHistory, opponentID)
	}

	// Opponent history is typically short, so the window spans every
	// matching game rather than a fixed games-back count.
	stats, err := Window(games, len(games))
	if err != nil {
		return models.MatchupStats{}, err
	}

	values := games.Values()
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	last := games[len(games)-1]

	return models.MatchupStats{
		OpponentID:      opponentID,
		Average:         stats.Mean,
		Max:             max,
		Min:             min,
		StdDev:          stats.StdDev,
		GamesPlayed:     len(games),
		Trend:           matchupTrend(games),
		LastPerformance: last.Value,
		LastMatchupDate: last.GameDate,
	}, nil
}

// matchupTrend applies the global direction rule to the matchup
// subsequence. With ten or more matchup games the usual 5/10 windows
// apply; below that the history splits into an older half (baseline) and
// a recent half. A single game has nothing to split and reads STABLE.
func matchupTrend(games models.GameLog) models.TrendResult {
	if len(games) < 2 {
		return models.TrendResult{Direction: models.TrendStable, Confidence: models.ConfidenceLow}
	}

	if len(games) >= 10 {
		short, _ := Window(games, 5)
		long, _ := Window(games, 10)
		return ClassifyTrend(short, long)
	}

	mid := len(games) / 2
	older, _ := Window(games[:mid], mid)
	recent, _ := Window(games[mid:], len(games)-mid)
	return ClassifyTrend(recent, older)
}

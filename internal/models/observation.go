package models

import (
	"time"

	"github.com/google/uuid"
)

// Observation is one recorded value of one metric for one player in one
// game. Observations are immutable once ingested.
type Observation struct {
	ID         uuid.UUID `json:"id"`
	PlayerID   string    `json:"player_id"`
	Metric     string    `json:"metric"`
	OpponentID string    `json:"opponent_id,omitempty"`
	GameDate   time.Time `json:"game_date"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// GameLog is the date-ordered history of one (player, metric) pair,
// oldest first. Duplicate dates are legal (doubleheaders, data corrections)
// and keep their insertion order.
type GameLog []Observation

// Values returns the observation values in chronological order.
func (g GameLog) Values() []float64 {
	values := make([]float64, len(g))
	for i, obs := range g {
		values[i] = obs.Value
	}
	return values
}

// Last returns the most recent n observations, still oldest first.
// If the log holds fewer than n games the whole log is returned.
func (g GameLog) Last(n int) GameLog {
	if n <= 0 || n >= len(g) {
		return g
	}
	return g[len(g)-n:]
}

// FilterOpponent returns the subsequence of games played against the given
// opponent, preserving order.
func (g GameLog) FilterOpponent(opponentID string) GameLog {
	var filtered GameLog
	for _, obs := range g {
		if obs.OpponentID == opponentID {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}

// MaxValue returns the largest observed value, or 0 for an empty log.
func (g GameLog) MaxValue() float64 {
	var max float64
	for i, obs := range g {
		if i == 0 || obs.Value > max {
			max = obs.Value
		}
	}
	return max
}

package analysis

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/proplines/lines-api/internal/models"
)

// makeLog builds a chronological log, one game every two days. opponents may
// be shorter than values; missing entries stay empty.
func makeLog(values []float64, opponents []string) models.GameLog {
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	log := make(models.GameLog, len(values))
	for i, v := range values {
		var opp string
		if i < len(opponents) {
			opp = opponents[i]
		}
		log[i] = models.Observation{
			ID:         uuid.New(),
			PlayerID:   "player-23",
			Metric:     "points",
			OpponentID: opp,
			GameDate:   start.AddDate(0, 0, i*2),
			Value:      v,
			RecordedAt: start,
		}
	}
	return log
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

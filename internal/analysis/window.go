package analysis

import (
	"fmt"
	"math"

	"github.com/proplines/lines-api/internal/models"
)

// outlierSigma is the advisory flagging threshold. Flagged games are never
// excluded from the mean or deviation: a blowout is real data.
const outlierSigma = 2.0

// Window computes rolling statistics over the most recent windowSize games
// of a log. With fewer games than the window, the whole log is used.
// An empty log is an error rather than a zero-count result so that trend
// and line logic can never silently operate on zero games.
func Window(log models.GameLog, windowSize int) (models.WindowStats, error) {
	if windowSize <= 0 {
		return models.WindowStats{}, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	if len(log) == 0 {
		return models.WindowStats{}, ErrInsufficientData
	}

	values := log.Last(windowSize).Values()
	n := len(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	// Sample standard deviation, N-1 denominator. A single game has no
	// spread to estimate.
	var stddev float64
	if n > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(n-1))
	}

	var outliers []int
	if stddev > 0 {
		for i, v := range values {
			if math.Abs(v-mean) > outlierSigma*stddev {
				outliers = append(outliers, i)
			}
		}
	}

	return models.WindowStats{
		Mean:       mean,
		StdDev:     stddev,
		Count:      n,
		WindowSize: windowSize,
		Outliers:   outliers,
	}, nil
}

package analysis

import "github.com/proplines/lines-api/internal/models"

// trendThreshold is the fixed fraction of the long-window mean the short
// window must move by before form counts as a trend. Not configurable, so
// trend semantics stay identical across callers.
const trendThreshold = 0.05

// ClassifyTrend compares a short window against a long window of the same
// game log. The confidence tier grades sample sufficiency only; it makes
// no claim of statistical significance.
func ClassifyTrend(short, long models.WindowStats) models.TrendResult {
	direction := models.TrendStable
	if long.Mean != 0 {
		shift := (short.Mean - long.Mean) / long.Mean
		switch {
		case shift > trendThreshold:
			direction = models.TrendUp
		case shift < -trendThreshold:
			direction = models.TrendDown
		}
	}

	confidence := models.ConfidenceLow
	switch {
	case short.Count >= 5 && long.Count >= 10:
		confidence = models.ConfidenceHigh
	case short.Count >= 3:
		confidence = models.ConfidenceMedium
	}

	return models.TrendResult{Direction: direction, Confidence: confidence}
}

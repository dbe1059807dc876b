// Package gamelog owns the append-only observation history. The analysis
// core only reads from it; ingestion only appends. Validation happens here
// so malformed observations never enter a log.
package gamelog

import (
	"context"
	"fmt"
	"math"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

// Store is the full observation store surface. Query returns a consistent
// snapshot: a slice that later appends never mutate.
type Store interface {
	Append(ctx context.Context, obs models.Observation) error
	Query(ctx context.Context, playerID, metric string) (models.GameLog, error)
}

// validateObservation enforces the metric schema at ingestion time.
func validateObservation(obs models.Observation) error {
	if obs.PlayerID == "" {
		return fmt.Errorf("%w: missing player id", analysis.ErrInvalidObservation)
	}
	if obs.GameDate.IsZero() {
		return fmt.Errorf("%w: missing game date", analysis.ErrInvalidObservation)
	}
	if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
		return fmt.Errorf("%w: value is not a number", analysis.ErrInvalidObservation)
	}

	spec, ok := models.LookupMetric(obs.Metric)
	if !ok {
		return fmt.Errorf("%w: unknown metric %q", analysis.ErrInvalidObservation, obs.Metric)
	}
	if spec.Integer && obs.Value != math.Trunc(obs.Value) {
		return fmt.Errorf("%w: metric %q takes whole numbers, got %v", analysis.ErrInvalidObservation, obs.Metric, obs.Value)
	}
	if !spec.AllowNegative && obs.Value < 0 {
		return fmt.Errorf("%w: metric %q cannot be negative, got %v", analysis.ErrInvalidObservation, obs.Metric, obs.Value)
	}

	return nil
}

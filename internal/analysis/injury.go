package analysis

import (
	"fmt"

	"github.com/proplines/lines-api/internal/models"
)

const (
	questionableMultiplier = 0.95
	returningMultiplier    = 0.90
	// returningRampGames is how many games after a return the reduced-role
	// discount stays in effect.
	returningRampGames = 3
)

// InjuryMultiplier maps an injury status to the multiplicative adjustment
// applied to a suggested line. OUT is not an adjustment: a line for a
// player who will not play is misleading, so the suggestion is suppressed
// with ErrPlayerUnavailable instead.
func InjuryMultiplier(status models.InjuryStatus) (float64, error) {
	switch status.State {
	case models.InjuryOut:
		return 0, fmt.Errorf("%w: %s is ruled OUT", ErrPlayerUnavailable, status.PlayerID)
	case models.InjuryQuestionable:
		return questionableMultiplier, nil
	case models.InjuryReturning:
		if status.GamesSinceReturn <= returningRampGames {
			return returningMultiplier, nil
		}
		return 1.0, nil
	default:
		// ACTIVE, and fail-open for anything the feed invents later.
		return 1.0, nil
	}
}

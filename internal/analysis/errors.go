package analysis

import "errors"

// Error taxonomy shared by the core and its collaborators. Callers
// distinguish cases with errors.Is; implementations wrap these with
// request detail.
var (
	// ErrInsufficientData means the player has no recorded games for the
	// metric. Fatal to the request.
	ErrInsufficientData = errors.New("no games recorded")

	// ErrNoMatchupHistory means the player has never faced the opponent.
	// Recoverable: the suggester falls back to unconditional statistics.
	ErrNoMatchupHistory = errors.New("no matchup history")

	// ErrPlayerUnavailable means the player is ruled OUT. A line for an
	// unavailable player is a correctness violation, so this propagates.
	ErrPlayerUnavailable = errors.New("player unavailable")

	// ErrInvalidObservation rejects malformed input at ingestion, before
	// it can enter a game log.
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrUnknownPlayer means the injury feed does not track the player.
	// Recoverable: the core fails open to ACTIVE.
	ErrUnknownPlayer = errors.New("player not tracked")

	// ErrUnsupportedConfidence rejects confidence levels outside the
	// z-score table rather than silently snapping to a neighbor.
	ErrUnsupportedConfidence = errors.New("unsupported confidence interval")
)

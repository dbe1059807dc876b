package injury

import (
	"context"
	"fmt"
	"sync"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

// StaticFeed holds statuses in memory. Used by tests and local runs
// without a tracker behind Redis.
type StaticFeed struct {
	mu       sync.RWMutex
	statuses map[string]models.InjuryStatus
}

func NewStaticFeed() *StaticFeed {
	return &StaticFeed{statuses: make(map[string]models.InjuryStatus)}
}

// Set records or replaces a player's status.
func (f *StaticFeed) Set(status models.InjuryStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[status.PlayerID] = status
}

func (f *StaticFeed) GetStatus(_ context.Context, playerID string) (models.InjuryStatus, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	status, ok := f.statuses[playerID]
	if !ok {
		return models.InjuryStatus{}, fmt.Errorf("%w: %s", analysis.ErrUnknownPlayer, playerID)
	}
	return status, nil
}

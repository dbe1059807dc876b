package gamelog

import (
	"context"
	"sync"

	"github.com/proplines/lines-api/internal/models"
)

type logKey struct {
	playerID string
	metric   string
}

// MemoryStore keeps game logs in process memory. Appends are serialized
// under the write lock and readers get a copied snapshot, so a read
// observes the log either before or after any given append, never a torn
// mix. Suits tests and single-node deployments without Postgres.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[logKey]models.GameLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logs: make(map[logKey]models.GameLog)}
}

// Append validates and records one observation. Logs stay ordered by game
// date; an equal date lands after the existing entries for that date.
func (s *MemoryStore) Append(_ context.Context, obs models.Observation) error {
	if err := validateObservation(obs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := logKey{playerID: obs.PlayerID, metric: obs.Metric}
	log := s.logs[key]

	i := len(log)
	for i > 0 && log[i-1].GameDate.After(obs.GameDate) {
		i--
	}

	log = append(log, models.Observation{})
	copy(log[i+1:], log[i:])
	log[i] = obs
	s.logs[key] = log

	return nil
}

// Query returns a snapshot of one (player, metric) log, possibly empty.
func (s *MemoryStore) Query(_ context.Context, playerID, metric string) (models.GameLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[logKey{playerID: playerID, metric: metric}]
	snapshot := make(models.GameLog, len(log))
	copy(snapshot, log)
	return snapshot, nil
}

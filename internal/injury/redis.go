// Package injury implements the analysis.InjuryFeed interface. Statuses
// are owned by the external injury tracker, which writes them into Redis;
// this package only reads.
package injury

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

const statusKeyPrefix = "injury:player:"

// RedisClient is the slice of redis.Client the feed needs.
type RedisClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisFeed reads live injury statuses from the hash the tracker maintains
// at injury:player:<id> (fields: state, games_since_return, detail,
// updated_at).
type RedisFeed struct {
	client RedisClient
}

func NewRedisFeed(client RedisClient) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) GetStatus(ctx context.Context, playerID string) (models.InjuryStatus, error) {
	fields, err := f.client.HGetAll(ctx, statusKeyPrefix+playerID).Result()
	if err != nil {
		return models.InjuryStatus{}, fmt.Errorf("injury feed lookup: %w", err)
	}
	if len(fields) == 0 {
		return models.InjuryStatus{}, fmt.Errorf("%w: %s", analysis.ErrUnknownPlayer, playerID)
	}

	status := models.InjuryStatus{
		PlayerID: playerID,
		State:    parseState(fields["state"]),
		Detail:   fields["detail"],
	}
	if raw := fields["games_since_return"]; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			status.GamesSinceReturn = n
		}
	}
	if raw := fields["updated_at"]; raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			status.UpdatedAt = ts
		}
	}

	return status, nil
}

// parseState normalizes the tracker's free-text designation. Anything
// outside the known set reads as ACTIVE: an unrecognized status must not
// block suggestions.
func parseState(raw string) models.InjuryState {
	switch models.InjuryState(strings.ToUpper(strings.TrimSpace(raw))) {
	case models.InjuryOut:
		return models.InjuryOut
	case models.InjuryQuestionable:
		return models.InjuryQuestionable
	case models.InjuryReturning:
		return models.InjuryReturning
	default:
		return models.InjuryActive
	}
}

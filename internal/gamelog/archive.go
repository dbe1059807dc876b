package gamelog

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/proplines/lines-api/internal/models"
)

// Archive is the append-only ClickHouse copy of every raw observation,
// written in batches by the ingestion pool and queried for player history.
// It is analytical storage, not the source of truth for line computation.
type Archive struct {
	ch driver.Conn
}

func NewArchive(ch driver.Conn) *Archive {
	return &Archive{ch: ch}
}

// InsertBatch appends a batch of observations to the archive.
func (a *Archive) InsertBatch(ctx context.Context, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	batch, err := a.ch.PrepareBatch(ctx, `
		INSERT INTO props_stats.raw_observations (
			id, player_id, metric, opponent_id, game_date, value, recorded_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare archive batch: %w", err)
	}

	for _, obs := range observations {
		if err := batch.Append(
			obs.ID.String(),
			obs.PlayerID,
			obs.Metric,
			obs.OpponentID,
			obs.GameDate,
			obs.Value,
			obs.RecordedAt,
		); err != nil {
			return fmt.Errorf("append observation to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send archive batch: %w", err)
	}
	return nil
}

// RecentHistory returns a player's latest archived observations for one
// metric, most recent first.
func (a *Archive) RecentHistory(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.ch.Query(ctx, `
		SELECT player_id, metric, opponent_id, game_date, value, recorded_at
		FROM props_stats.raw_observations
		WHERE player_id = ? AND metric = ?
		ORDER BY game_date DESC, recorded_at DESC
		LIMIT ?
	`, playerID, metric, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	history := []models.Observation{}
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.PlayerID, &obs.Metric, &obs.OpponentID,
			&obs.GameDate, &obs.Value, &obs.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history = append(history, obs)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return history, nil
}

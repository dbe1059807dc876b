package gamelog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/proplines/lines-api/internal/models"
)

const (
	insertObservationSQL = `INSERT INTO game_observations (
        id, player_id, metric, opponent_id, game_date, value, recorded_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryGameLogSQL = `SELECT
        id, player_id, metric, opponent_id, game_date, value, recorded_at
    FROM game_observations
    WHERE player_id = $1 AND metric = $2
    ORDER BY game_date, recorded_at, id`
)

// PgPool is the slice of pgxpool.Pool the store needs, mockable in tests.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore is the durable observation store. Insertion order within a
// game date is preserved by the recorded_at/id sort, matching the
// append-only tie-break rule of the in-memory store.
type PostgresStore struct {
	pool PgPool
}

func NewPostgresStore(pool PgPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, obs models.Observation) error {
	if err := validateObservation(obs); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, insertObservationSQL,
		obs.ID, obs.PlayerID, obs.Metric, obs.OpponentID, obs.GameDate, obs.Value, obs.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// AppendBatch validates and inserts a batch in one round trip. Invalid
// observations fail the whole batch before anything is written; the worker
// pool filters them out beforehand.
func (s *PostgresStore) AppendBatch(ctx context.Context, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	for _, obs := range observations {
		if err := validateObservation(obs); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}
	for _, obs := range observations {
		batch.Queue(insertObservationSQL,
			obs.ID, obs.PlayerID, obs.Metric, obs.OpponentID, obs.GameDate, obs.Value, obs.RecordedAt)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range observations {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert observations: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, playerID, metric string) (models.GameLog, error) {
	rows, err := s.pool.Query(ctx, queryGameLogSQL, playerID, metric)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	defer rows.Close()

	log := models.GameLog{}
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.ID, &obs.PlayerID, &obs.Metric, &obs.OpponentID,
			&obs.GameDate, &obs.Value, &obs.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		log = append(log, obs)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return log, nil
}

package handlers

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/models"
)

// MaxBodySize limits ingest request bodies to 1MB
const MaxBodySize = 1048576

// IngestQueue is the ingestion worker pool surface the handlers use.
type IngestQueue interface {
	Enqueue(obs models.Observation) bool
	QueueDepth() int
}

// HistorySource serves archived raw observations.
type HistorySource interface {
	RecentHistory(ctx context.Context, playerID, metric string, limit int) ([]models.Observation, error)
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Lines    analysis.LineService
	Injuries analysis.InjuryFeed
	History  HistorySource
}

type Handler struct {
	pool      IngestQueue
	pg        *pgxpool.Pool
	ch        driver.Conn
	redis     *redis.Client
	logger    *zap.SugaredLogger
	validator *validator.Validate
	lines     analysis.LineService
	injuries  analysis.InjuryFeed
	history   HistorySource
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:      cfg.WorkerPool,
		pg:        cfg.Postgres,
		ch:        cfg.ClickHouse,
		redis:     cfg.Redis,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
		lines:     cfg.Lines,
		injuries:  cfg.Injuries,
		history:   cfg.History,
	}
}

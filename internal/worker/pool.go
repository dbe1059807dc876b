// Package worker implements the buffered worker pool that decouples HTTP
// ingestion from storage writes: validated observations are appended to the
// durable store and batch-inserted into the ClickHouse archive, with a
// graceful flush on shutdown.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/proplines/lines-api/internal/analysis"
	"github.com/proplines/lines-api/internal/gamelog"
	"github.com/proplines/lines-api/internal/models"
)

var (
	observationsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "props_observations_ingested_total",
		Help: "Total number of observations accepted into the queue",
	})

	observationsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "props_observations_processed_total",
		Help: "Total number of observations written to storage",
	})

	observationsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "props_observations_rejected_total",
		Help: "Total number of observations rejected by schema validation",
	})

	observationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "props_observations_failed_total",
		Help: "Total number of observations that failed storage writes",
	})

	observationsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "props_observations_load_shed_total",
		Help: "Total number of observations dropped because the pool was stopping",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "props_worker_queue_depth",
		Help: "Current depth of the ingestion queue",
	})

	batchFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "props_batch_flush_duration_seconds",
		Help:    "Duration of batch flushes to storage",
		Buckets: prometheus.DefBuckets,
	})
)

// Archiver is the batch sink for raw observations. Optional; nil disables
// archiving.
type Archiver interface {
	InsertBatch(ctx context.Context, observations []models.Observation) error
}

// PoolConfig configures the ingestion pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Store         gamelog.Store
	Archive       Archiver
	Logger        *zap.Logger
}

// Pool manages the ingestion workers.
type Pool struct {
	config PoolConfig
	queue  chan models.Observation
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config: cfg,
		queue:  make(chan models.Observation, cfg.QueueSize),
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("Ingestion pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue and flushes remaining batches. The context is
// canceled only after the workers finish, so everything enqueued before
// Stop still reaches storage.
func (p *Pool) Stop() {
	p.logger.Info("Stopping ingestion pool...")
	close(p.queue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Ingestion pool stopped")
}

// Enqueue adds an observation to the queue. Returns false when the pool is
// shutting down.
func (p *Pool) Enqueue(obs models.Observation) bool {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue observation (pool stopped)", "error", r)
		}
	}()

	select {
	case p.queue <- obs:
		observationsIngested.Inc()
		return true
	case <-p.ctx.Done():
		observationsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.Observation, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		p.processBatch(batch)
		batchFlushDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	for {
		select {
		case obs, ok := <-p.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, obs)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch appends each observation to the store, then ships the ones
// that passed validation to the archive in a single batch. The store is
// the source of truth, so it is written first.
func (p *Pool) processBatch(batch []models.Observation) {
	ctx := context.Background()

	accepted := make([]models.Observation, 0, len(batch))
	for _, obs := range batch {
		if err := p.config.Store.Append(ctx, obs); err != nil {
			if errors.Is(err, analysis.ErrInvalidObservation) {
				observationsRejected.Inc()
				p.logger.Warnw("Observation rejected",
					"player", obs.PlayerID, "metric", obs.Metric, "error", err)
				continue
			}
			observationsFailed.Inc()
			p.logger.Errorw("Observation append failed",
				"player", obs.PlayerID, "metric", obs.Metric, "error", err)
			continue
		}
		accepted = append(accepted, obs)
	}
	observationsProcessed.Add(float64(len(accepted)))

	if p.config.Archive == nil || len(accepted) == 0 {
		return
	}
	if err := p.config.Archive.InsertBatch(ctx, accepted); err != nil {
		// The archive is analytical storage; a miss here does not undo the
		// store write.
		p.logger.Errorw("Archive batch insert failed", "batchSize", len(accepted), "error", err)
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.queue)))
		case <-p.ctx.Done():
			return
		}
	}
}

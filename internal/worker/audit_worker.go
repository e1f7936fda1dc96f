package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/model"
)

// PollTimeout bounds each BLPOP; Redis requires at least one second.
const PollTimeout = 1 * time.Second

// retryDelay is how long the worker backs off after a failed insert.
var retryDelay = 5 * time.Second

// AuditStore persists audit entries.
type AuditStore interface {
	Insert(ctx context.Context, e *model.AuditEntry) error
}

// AuditQueue pushes audit entries onto the Redis queue the worker drains.
type AuditQueue struct {
	rdb *redis.Client
}

// NewAuditQueue creates a new AuditQueue.
func NewAuditQueue(rdb *redis.Client) *AuditQueue {
	return &AuditQueue{rdb: rdb}
}

// Record enqueues e.
func (q *AuditQueue) Record(ctx context.Context, e model.AuditEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	return q.rdb.RPush(ctx, config.WorkerKey.AuditQueue, payload).Err()
}

// AuditWorker consumes console_audit_queue and inserts entries into PostgreSQL.
type AuditWorker struct {
	store AuditStore
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(store AuditStore, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		store: store,
		rdb:   rdb,
		log:   log.With().Str("component", "audit_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled, then drains the queue.
// Call in a goroutine; done is closed once draining finished.
func (w *AuditWorker) Start(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AuditWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.AuditQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(PollTimeout)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.persist(ctx, result[1]); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			w.log.Error().Err(err).Msg("Dropping undecodable audit entry")
			return
		}
		w.log.Error().Err(err).Msg("Persist error, retrying")
		w.rdb.RPush(context.WithoutCancel(ctx), config.WorkerKey.AuditQueue, result[1])
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
		}
	}
}

func (w *AuditWorker) persist(ctx context.Context, raw string) error {
	var e model.AuditEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return err
	}
	return w.store.Insert(ctx, &e)
}

// drain writes every entry still queued before shutdown.
func (w *AuditWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.AuditQueue).Result()
		if err != nil {
			break
		}
		if err := w.persist(ctx, raw); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.AuditQueue, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"posadmin/internal/model"
	"posadmin/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAudit = "jobs:audit"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues audit events into a Redis list. The worker pool
// dequeues them via BRPOP and persists them. Enqueueing is best-effort:
// Record never returns an error, so a Redis outage cannot fail the request
// that produced the event.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) Record(ctx context.Context, event model.AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("audit: event marshal failed")
		return
	}
	job := Job{Type: "audit", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		log.Warn().Err(err).Msg("audit: job marshal failed")
		return
	}
	if err := d.rdb.LPush(ctx, QueueAudit, encoded).Err(); err != nil {
		log.Warn().Err(err).Str("action", event.Action).Msg("audit: enqueue failed")
	}
}

// StartWorkerPool launches numWorkers goroutines consuming the audit queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, auditRepo repository.AuditRepository, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, auditRepo, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, auditRepo repository.AuditRepository, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAudit).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, auditRepo, result[1])
		}
	}
}

func processJob(ctx context.Context, auditRepo repository.AuditRepository, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("audit: failed to unmarshal job")
		return
	}
	var event model.AuditEvent
	if err := json.Unmarshal(job.Payload, &event); err != nil {
		log.Error().Err(err).Msg("audit: failed to unmarshal event")
		return
	}
	if err := auditRepo.Insert(ctx, &event); err != nil {
		log.Error().Err(err).Str("action", event.Action).Msg("audit: insert failed")
	}
}

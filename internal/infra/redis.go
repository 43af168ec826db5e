package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client backing the audit job queue. The dispatcher
// pushes and the worker pool pops on the same connection pool, so it is sized
// for a handful of concurrent blocking pops plus request-path pushes.
func NewRedis(redisURL string, workerPoolSize int) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = workerPoolSize + 10
	opts.MinIdleConns = 2

	rdb := redis.NewClient(opts)

	// Fail fast at startup rather than on the first queued job.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

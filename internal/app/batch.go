package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/rcg/internal/adapters/mq/queue"
	"github.com/okian/rcg/internal/adapters/mq/worker"
	"github.com/okian/rcg/pkg/logger"
)

// Result is the outcome of one batch job.
type Result struct {
	Job   queue.Job
	Stats Stats
	Err   error
}

// BatchOption applies a configuration option to RunBatch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	workers   int
	queueSize int
}

// WithWorkers sets the pool size. Zero means one worker per CPU.
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithQueueSize bounds the job queue.
func WithQueueSize(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// RunBatch converts every job on a worker pool and returns the results in
// job order. Each job gets its own parser session, driver and serializer.
func RunBatch(ctx context.Context, s *Service, jobs []queue.Job, opts ...BatchOption) []Result {
	cfg := batchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, len(jobs))
	index := make(map[string]int, len(jobs))
	for i, j := range jobs {
		index[j.ID] = i
		results[i].Job = j
	}

	var mu sync.Mutex
	ran := make([]bool, len(jobs))
	proc := worker.ProcessorFunc(func(ctx context.Context, job queue.Job) error {
		stats, err := s.ConvertFile(ctx, job.Input, job.Output)
		mu.Lock()
		i := index[job.ID]
		results[i].Stats = stats
		results[i].Err = err
		ran[i] = true
		mu.Unlock()
		return err
	})

	q := queue.NewInMemoryQueue(queue.WithCapacity(cfg.queueSize))
	pool := worker.NewPool(cfg.workers, q, proc)
	pool.Start(ctx)

	s.logger.Info(ctx, "batch started",
		logger.Int("jobs", len(jobs)),
		logger.Int("workers", pool.Size()),
	)

	for _, j := range jobs {
		if err := q.Put(ctx, j); err != nil {
			break
		}
	}
	_ = q.Close()
	pool.Wait()

	failed := 0
	for i := range results {
		if !ran[i] {
			results[i].Err = fmt.Errorf("%w: %s: not run: %w", ErrConvertFailed, results[i].Job.Input, context.Cause(ctx))
		}
		if results[i].Err != nil {
			failed++
		}
	}
	s.logger.Info(ctx, "batch finished",
		logger.Int("jobs", len(jobs)),
		logger.Int("failed", failed),
	)
	return results
}

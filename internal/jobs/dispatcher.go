// Package jobs runs review submissions on a bounded pool of workers.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
)

// ErrQueueFull is returned by Dispatch when no queue slot is free.
var ErrQueueFull = errors.New("job queue is full, cannot accept new review job")

// ErrStopped is returned by Dispatch after Stop.
var ErrStopped = errors.New("dispatcher is stopped")

const defaultQueueSize = 100

// task is one queued submission with the context it was dispatched under.
type task struct {
	ctx    context.Context
	sub    *core.Submission
	result chan core.Result
}

// dispatcher implements core.JobDispatcher and manages a pool of worker goroutines.
type dispatcher struct {
	job        core.Job       // Job implementation executed by each worker.
	jobQueue   chan *task     // Queue of pending submissions.
	maxWorkers int            // Number of concurrent workers.
	wg         sync.WaitGroup // Tracks active workers for graceful shutdown.
	logger     *slog.Logger

	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1; a non-positive queueSize
// defaults to 100.
func NewDispatcher(job core.Job, maxWorkers, queueSize int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &dispatcher{
		job:        job,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *task, queueSize),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

// startWorkers launches maxWorkers goroutines to process jobs from the queue.
func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes tasks from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting review worker", "id", workerID)

	for t := range d.jobQueue {
		d.process(workerID, t)
	}

	d.logger.Debug("shutting down review worker", "id", workerID)
}

// process runs one task and delivers exactly one result.
func (d *dispatcher) process(workerID int, t *task) {
	if err := t.ctx.Err(); err != nil {
		d.logger.Info("skipping cancelled review job", "worker_id", workerID, "reason", err)
		t.result <- core.Result{Err: &core.RequestError{Err: err}}
		return
	}

	d.logger.Debug("worker processing job", "worker_id", workerID, "language", t.sub.Language)
	review, err := d.job.Run(t.ctx, t.sub)
	t.result <- core.Result{Review: review, Err: err}
}

// Dispatch queues a submission for processing by a worker.
func (d *dispatcher) Dispatch(ctx context.Context, sub *core.Submission) (<-chan core.Result, error) {
	if sub == nil {
		return nil, fmt.Errorf("submission cannot be nil")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return nil, ErrStopped
	}

	t := &task{ctx: ctx, sub: sub, result: make(chan core.Result, 1)}
	select {
	case d.jobQueue <- t:
		return t.result, nil
	default:
		return nil, ErrQueueFull
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobQueue)
	d.mu.Unlock()

	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	d.wg.Wait()
	d.logger.Info("all review jobs have finished")
}

package indexer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gnana997/widgetspec/pkg/util"
)

// ErrPoolStopped is returned by Submit after Stop.
var ErrPoolStopped = errors.New("worker pool is stopped")

// WorkerPool resolves props files on a fixed set of goroutines.
//
// Usage:
//
//	pool := NewWorkerPool(numWorkers, engine, logger)
//	pool.Start()
//	defer pool.Stop()
//
//	go func() {
//	    defer pool.FinishSubmitting()
//	    for i, file := range files {
//	        if err := pool.Submit(ctx, Job{FilePath: file, JobID: i}); err != nil {
//	            return
//	        }
//	    }
//	}()
//
//	for result := range pool.Results() {
//	    // results arrive in completion order; use JobID to restore order
//	}
//
// Results is closed once every worker has exited, which happens after
// FinishSubmitting and a drained queue, or after Stop.
type WorkerPool struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
	done       chan struct{}
	resolver   Resolver
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a new worker pool. numWorkers 0 uses
// util.GetOptimalPoolSize(), which is also the parser pool size, so no
// worker waits on a parser.
func NewWorkerPool(numWorkers int, resolver Resolver, logger *slog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numWorkers*2),
		results:    make(chan Result, numWorkers),
		done:       make(chan struct{}),
		resolver:   resolver,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns all worker goroutines. Must be called before Submit.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		wp.logger.Warn("WorkerPool already started")
		return
	}

	wp.logger.Debug("Starting worker pool", "workers", wp.numWorkers)

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	go func() {
		wp.wg.Wait()
		close(wp.results)
		close(wp.done)
	}()
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return

		case job, ok := <-wp.jobs:
			if !ok {
				return
			}

			result := wp.processJob(id, job)
			select {
			case wp.results <- result:
			case <-wp.ctx.Done():
				return
			}
		}
	}
}

func (wp *WorkerPool) processJob(workerID int, job Job) Result {
	start := time.Now()
	res, err := wp.resolver.Resolve(job.FilePath)

	result := Result{
		FilePath: job.FilePath,
		Widget:   res,
		Err:      err,
		Duration: time.Since(start),
		JobID:    job.JobID,
	}
	if err != nil {
		wp.jobsFailed.Add(1)
		result.Widget = nil
		result.Error = err.Error()
		wp.logger.Debug("Resolution failed", "worker_id", workerID, "file", job.FilePath, "error", err)
	} else {
		wp.jobsProcessed.Add(1)
	}
	return result
}

// Submit enqueues a job, blocking while the queue is full. It returns
// ctx's error if ctx ends first.
func (wp *WorkerPool) Submit(ctx context.Context, job Job) error {
	if wp.stopped.Load() || wp.jobsClosed.Load() {
		return ErrPoolStopped
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.ctx.Done():
		return ErrPoolStopped
	case wp.jobs <- job:
		wp.jobsSubmitted.Add(1)
		return nil
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan Result {
	return wp.results
}

// FinishSubmitting closes the job queue. Workers exit once it is drained.
// Only the submitting goroutine may call it. Safe to call multiple times.
func (wp *WorkerPool) FinishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

// Stop cancels outstanding work and waits for every worker to exit.
// Results not yet consumed are discarded. Safe to call multiple times.
func (wp *WorkerPool) Stop() {
	if !wp.stopped.CompareAndSwap(false, true) {
		return
	}

	wp.cancel()
	if wp.started.Load() {
		<-wp.done
	}

	wp.logger.Debug("Worker pool stopped",
		"jobs_submitted", wp.jobsSubmitted.Load(),
		"jobs_processed", wp.jobsProcessed.Load(),
		"jobs_failed", wp.jobsFailed.Load())
}

// GetStats returns current worker pool statistics.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	return WorkerPoolStats{
		NumWorkers:    wp.numWorkers,
		JobsSubmitted: wp.jobsSubmitted.Load(),
		JobsProcessed: wp.jobsProcessed.Load(),
		JobsFailed:    wp.jobsFailed.Load(),
		QueueLength:   len(wp.jobs),
	}
}

// WorkerPoolStats contains statistics about the worker pool.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int // Current jobs in queue
}

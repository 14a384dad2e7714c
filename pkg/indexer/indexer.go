// Package indexer resolves every widget of a component library in
// parallel.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/util"
)

// Indexer discovers props files and resolves them on a WorkerPool.
//
//	ix := indexer.NewIndexer(engine, indexer.DefaultOptions(), logger)
//	results, stats, err := ix.IndexLibrary(ctx, "/path/to/components", nil)
//
// Results come back in discovery order regardless of which worker
// finished first. A failed file is recorded in its Result and in
// stats.Errors; it never aborts the run.
type Indexer struct {
	resolver Resolver
	opts     Options
	logger   *slog.Logger
}

// NewIndexer creates a new indexer.
func NewIndexer(resolver Resolver, opts Options, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Include) == 0 {
		opts.Include = DefaultOptions().Include
	}
	return &Indexer{
		resolver: resolver,
		opts:     opts,
		logger:   logger,
	}
}

// IndexLibrary resolves every props file under root. The returned error is
// non-nil only when discovery itself fails.
func (ix *Indexer) IndexLibrary(ctx context.Context, root string, progress ProgressCallback) ([]Result, *BatchStats, error) {
	start := time.Now()

	ix.logger.Info("Starting library index", "root", root)

	files, err := search.Discover(root, search.Options{
		Include: ix.opts.Include,
		Exclude: ix.opts.Exclude,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("file discovery failed: %w", err)
	}
	discovery := time.Since(start)

	ix.logger.Info("File discovery complete",
		"files_found", len(files),
		"duration_ms", discovery.Milliseconds())

	results, stats := ix.ResolveFiles(ctx, files, progress)
	stats.StartTime = start
	stats.DiscoveryTimeMs = discovery.Milliseconds()
	stats.TotalTimeMs = time.Since(start).Milliseconds()

	ix.logger.Info("Library index complete",
		"files_resolved", stats.FilesResolved,
		"files_failed", stats.FilesFailed,
		"cancelled", stats.Cancelled,
		"duration_ms", stats.TotalTimeMs,
		"files_per_second", fmt.Sprintf("%.1f", stats.FilesPerSecond))

	return results, stats, nil
}

// ResolveFiles resolves files in parallel and returns one Result per
// dispatched file, in the order of files. When ctx ends, dispatching stops,
// files already queued still finish, and stats.Cancelled is set.
func (ix *Indexer) ResolveFiles(ctx context.Context, files []string, progress ProgressCallback) ([]Result, *BatchStats) {
	start := time.Now()
	stats := &BatchStats{
		FilesDiscovered: len(files),
		StartTime:       start,
		Errors:          make([]FileError, 0),
	}

	if len(files) == 0 {
		stats.EndTime = time.Now()
		return []Result{}, stats
	}

	numWorkers := ix.opts.Workers
	if numWorkers <= 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	stats.WorkerCount = numWorkers

	pool := NewWorkerPool(numWorkers, ix.resolver, ix.logger)
	pool.Start()
	defer pool.Stop()

	// Submitting runs beside collection so a full queue cannot block it.
	dispatched := make(chan int, 1)
	go func() {
		defer pool.FinishSubmitting()
		n := 0
		for i, file := range files {
			if err := pool.Submit(ctx, Job{FilePath: file, JobID: i}); err != nil {
				ix.logger.Debug("Dispatch stopped", "submitted", n, "error", err)
				break
			}
			n++
		}
		dispatched <- n
	}()

	slots := make([]*Result, len(files))
	finished := 0
	for result := range pool.Results() {
		r := result
		slots[r.JobID] = &r
		finished++

		if r.Err != nil {
			stats.FilesFailed++
			stats.Errors = append(stats.Errors, FileError{FilePath: r.FilePath, Error: r.Err})
			ix.logger.Warn("Widget resolution failed", "file", r.FilePath, "error", r.Err)
		} else {
			stats.FilesResolved++
			stats.TotalProps += r.Widget.Stats.TotalProps
			stats.TotalEvents += r.Widget.Stats.Events
			if levels := r.Widget.Stats.InheritanceLevels; levels > stats.DeepestChain {
				stats.DeepestChain = levels
			}
		}

		if progress != nil {
			progress(finished, len(files), r.FilePath)
		}
	}

	stats.FilesDispatched = <-dispatched
	stats.Cancelled = stats.FilesDispatched < len(files)

	results := make([]Result, 0, finished)
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	stats.EndTime = time.Now()
	stats.ResolveTimeMs = stats.EndTime.Sub(start).Milliseconds()
	if secs := stats.EndTime.Sub(start).Seconds(); secs > 0 {
		stats.FilesPerSecond = float64(finished) / secs
	}

	return results, stats
}

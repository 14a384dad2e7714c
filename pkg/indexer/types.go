package indexer

import (
	"time"

	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/widget"
)

// Resolver resolves one widget props file. *widget.Engine implements it.
type Resolver interface {
	Resolve(filePath string) (*widget.AggregatedWidgetStructure, error)
}

// Job is one props file queued for resolution.
type Job struct {
	FilePath string
	JobID    int
}

// Result is the outcome of one Job. Exactly one of Widget and Err is set.
type Result struct {
	FilePath string                            `json:"filePath"`
	Widget   *widget.AggregatedWidgetStructure `json:"widget,omitempty"`
	Err      error                             `json:"-"`
	Error    string                            `json:"error,omitempty"`
	Duration time.Duration                     `json:"-"`
	JobID    int                               `json:"-"`
}

// Options configures library indexing.
type Options struct {
	// Include patterns (doublestar syntax) select props files relative to
	// the library root.
	Include []string

	// Exclude patterns are skipped, directories included.
	Exclude []string

	// Workers is the number of resolver goroutines.
	// 0 = util.GetOptimalPoolSize()
	Workers int
}

// DefaultOptions returns options that index every compiled props file
// outside node_modules and VCS directories.
func DefaultOptions() Options {
	return Options{
		Include: append([]string(nil), search.DefaultPropsPatterns...),
		Exclude: append([]string(nil), search.DefaultExcludes...),
	}
}

// BatchStats contains statistics about one indexing run.
type BatchStats struct {
	// FilesDiscovered is the number of props files found
	FilesDiscovered int

	// FilesDispatched is the number of files handed to workers. It is
	// smaller than FilesDiscovered only when the run was cancelled.
	FilesDispatched int

	// FilesResolved is the number of files resolved without error
	FilesResolved int

	// FilesFailed is the number of files whose resolution failed
	FilesFailed int

	// TotalProps and TotalEvents sum the resolved widgets
	TotalProps  int
	TotalEvents int

	// DeepestChain is the longest inheritance chain seen
	DeepestChain int

	// WorkerCount is the number of workers used
	WorkerCount int

	// Errors contains per-file errors (if any)
	Errors []FileError

	// Cancelled indicates the context ended before every file was dispatched
	Cancelled bool

	// DiscoveryTimeMs, ResolveTimeMs and TotalTimeMs are wall-clock durations
	DiscoveryTimeMs int64
	ResolveTimeMs   int64
	TotalTimeMs     int64

	// FilesPerSecond is the resolution throughput
	FilesPerSecond float64

	StartTime time.Time
	EndTime   time.Time
}

// FileError represents an error that occurred while resolving a file.
type FileError struct {
	FilePath string
	Error    error
}

// ProgressCallback is called after every finished file.
//
// Parameters:
//   - done: Number of files finished so far
//   - total: Total number of files discovered
//   - currentFile: Path of the file just finished
type ProgressCallback func(done, total int, currentFile string)

// Package source reads widget library files for the resolution engine.
//
// The engine only needs two questions answered about a path: does it exist,
// and what is its text. FileReader answers them straight from disk using
// read-only memory maps, CachedReader keeps recently read text in a bounded
// LRU, and Watcher evicts cached text when the files change on disk.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

// ErrNotFound is returned (wrapped) when a path does not name a readable file.
var ErrNotFound = errors.New("source file not found")

// Reader is the read-only view of the file system used during resolution.
//
// Implementations must be safe for concurrent use.
type Reader interface {
	// Read returns the full text of the file at path.
	// Missing files yield an error wrapping ErrNotFound.
	Read(path string) (string, error)

	// Exists reports whether path names a regular file.
	Exists(path string) bool
}

// ReaderStats tracks FileReader activity.
type ReaderStats struct {
	Reads        int64
	Failures     int64
	MmapFailures int64
	BytesRead    int64
}

// FileReader reads files through memory maps, falling back to os.ReadFile
// when a mapping cannot be created (special files, exotic file systems).
type FileReader struct {
	logger *slog.Logger

	reads        atomic.Int64
	failures     atomic.Int64
	mmapFailures atomic.Int64
	bytesRead    atomic.Int64
}

// NewFileReader creates a FileReader. Logger can be nil.
func NewFileReader(logger *slog.Logger) *FileReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileReader{logger: logger}
}

// Read implements Reader.
func (r *FileReader) Read(path string) (string, error) {
	r.reads.Add(1)

	text, err := r.load(path)
	if err != nil {
		r.failures.Add(1)
		return "", err
	}
	r.bytesRead.Add(int64(len(text)))
	return text, nil
}

func (r *FileReader) load(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		return "", nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		r.mmapFailures.Add(1)
		r.logger.Debug("mmap failed, falling back to ReadFile", "path", path, "error", err)

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", fmt.Errorf("read %s: %w", path, rerr)
		}
		return string(data), nil
	}

	// string() copies out of the mapping, so it can be released right away.
	text := string(m)
	if err := m.Unmap(); err != nil {
		r.logger.Warn("failed to unmap file", "path", path, "error", err)
	}
	return text, nil
}

// Exists implements Reader.
func (r *FileReader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Stats returns a snapshot of the reader counters.
func (r *FileReader) Stats() ReaderStats {
	return ReaderStats{
		Reads:        r.reads.Load(),
		Failures:     r.failures.Load(),
		MmapFailures: r.mmapFailures.Load(),
		BytesRead:    r.bytesRead.Load(),
	}
}

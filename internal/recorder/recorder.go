// Package recorder appends usage vectors to a durable text log.
package recorder

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/haskel/cpuwatch/internal/monitor"
	"github.com/haskel/cpuwatch/internal/report"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "log.txt"

var ErrClosed = errors.New("recorder closed")

// Recorder writes one block per usage vector and flushes after each block.
type Recorder struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	file    *os.File
	w       *bufio.Writer
	entries int
	closed  bool
}

// Open creates or truncates the log at path.
func Open(path string, logger *slog.Logger) (*Recorder, error) {
	if path == "" {
		path = DefaultPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.Info("usage log opened", "path", path)

	return &Recorder{
		path:   path,
		logger: logger,
		file:   file,
		w:      bufio.NewWriter(file),
	}, nil
}

func (r *Recorder) Path() string {
	return r.path
}

// Write appends u and flushes it to the file.
func (r *Recorder) Write(u monitor.Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if _, err := r.w.WriteString(report.Format(u)); err != nil {
		return fmt.Errorf("failed to append usage: %w", err)
	}
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush usage log: %w", err)
	}

	r.entries++
	return nil
}

// Entries returns the number of blocks written.
func (r *Recorder) Entries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries
}

// Close flushes pending data and closes the file. It is safe to call twice.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	flushErr := r.w.Flush()
	closeErr := r.file.Close()

	r.logger.Info("usage log closed", "path", r.path, "entries", r.entries)

	return errors.Join(flushErr, closeErr)
}

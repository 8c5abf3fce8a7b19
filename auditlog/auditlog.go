// Package auditlog appends ledger attempt records to a line-delimited
// local log file.
//
// Appends never fail the caller: the submit path must not block on
// audit problems, so write errors are dropped after a debug log. Each
// entry goes out as one JSON line in a single write on an O_APPEND
// handle, which keeps concurrent appenders from interleaving partial
// lines.
package auditlog

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/gitseal/gitseal/registry"
)

// Log is an append-only audit log backed by a file.
type Log struct {
	mu       sync.Mutex
	f        *os.File
	path     string
	size     int64
	maxBytes int64
	logger   *slog.Logger
}

var _ registry.AuditSink = (*Log)(nil)

// Option configures a Log.
type Option func(*Log)

// WithMaxBytes sets the rotation threshold. When an append would push
// the active segment past n bytes, the segment is archived and
// compressed first. Zero disables rotation (the default).
func WithMaxBytes(n int64) Option {
	return func(l *Log) {
		l.maxBytes = n
	}
}

// WithLogger sets a logger for dropped-write diagnostics.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// Open opens the audit log at path for appending, creating it if needed.
func Open(path string, opts ...Option) (*Log, error) {
	l := &Log{path: path}
	for _, opt := range opts {
		opt(l)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	l.f = f
	l.size = info.Size()
	return l, nil
}

func (l *Log) log() *slog.Logger {
	if l.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.logger
}

// Append writes one entry as a single JSON line. Failures are swallowed.
func (l *Log) Append(e registry.AuditEntry) {
	line, err := json.Marshal(e)
	if err != nil {
		l.log().Debug("audit encode failed", "err", err)
		return
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.maxBytes > 0 && l.size+int64(len(line)) > l.maxBytes && l.size > 0 {
		if err := l.rotateLocked(); err != nil {
			l.log().Debug("audit rotate failed", "err", err)
		}
	}

	n, err := l.f.Write(line)
	if err != nil {
		l.log().Debug("audit append failed", "err", err)
		return
	}
	l.size += int64(n)
}

// Path returns the location of the active segment.
func (l *Log) Path() string {
	return l.path
}

// Close closes the active segment. Appends after Close are dropped.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

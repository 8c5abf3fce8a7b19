// Package memledger provides an in-memory Ledger used by tests and by
// the CLI's demo mode.
package memledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/gitseal/gitseal/registry"
)

// Ledger is an in-memory, append-only record store.
//
// It enforces at-most-one record per revision id and remembers insertion
// order for enumeration. Safe for concurrent use; all operations are
// atomic with respect to a given key.
type Ledger struct {
	mu      sync.Mutex
	records map[string]registry.Record
	order   []string
	seq     int
}

var _ registry.Ledger = (*Ledger)(nil)

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{records: make(map[string]registry.Record)}
}

// Put stores a copy of rec under key. A duplicate key is rejected with
// ErrAlreadyExists and leaves the stored record untouched.
func (l *Ledger) Put(_ context.Context, key string, rec *registry.Record) (registry.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.records[key]; ok {
		return registry.Receipt{}, fmt.Errorf("%w: %s", registry.ErrAlreadyExists, key)
	}
	l.records[key] = *rec
	l.order = append(l.order, key)
	l.seq++
	return registry.Receipt{ID: fmt.Sprintf("mem-%d", l.seq)}, nil
}

// Get returns a copy of the record stored under key.
func (l *Ledger) Get(_ context.Context, key string) (*registry.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, key)
	}
	return &rec, nil
}

// Exists reports whether a record is stored under key.
func (l *Ledger) Exists(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.records[key]
	return ok, nil
}

// Count returns the number of stored records.
func (l *Ledger) Count(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records), nil
}

// Keys returns all stored revision ids in insertion order.
func (l *Ledger) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.order...)
}

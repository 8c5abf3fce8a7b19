package registry

import "context"

// Ledger is the contract the external registry service must satisfy.
//
// Implementations must be atomic per key: a Put either stores the
// record and reports a receipt, or fails without observable effect.
// Errors must map onto this package's sentinels; in particular a
// duplicate key must surface as ErrAlreadyExists, never as a generic
// failure, so that the client cannot misclassify either direction.
type Ledger interface {
	// Put stores rec under key. It fails with ErrAlreadyExists if the
	// key is present, leaving the stored record untouched.
	Put(ctx context.Context, key string, rec *Record) (Receipt, error)

	// Get returns the record stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Record, error)

	// Exists reports whether a record is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

package snapshot

import "errors"

// Sentinel errors for local repository operations. All of them are
// local and non-retryable.
var (
	// ErrRevisionNotFound is returned when a revision cannot be resolved
	// in the local git store.
	ErrRevisionNotFound = errors.New("snapshot: revision not found")

	// ErrHashUnavailable is returned by NewHasher when the canonical
	// digest algorithm is not linked into the binary.
	ErrHashUnavailable = errors.New("snapshot: digest algorithm unavailable")

	// ErrMetadataUnavailable is returned when a revision's commit
	// metadata cannot be read, e.g. from a corrupt history.
	ErrMetadataUnavailable = errors.New("snapshot: revision metadata unavailable")
)

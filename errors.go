package gitseal

import (
	"github.com/gitseal/gitseal/registry"
	"github.com/gitseal/gitseal/snapshot"
)

// Errors re-exported from snapshot.
var (
	// ErrRevisionNotFound is returned when a revision cannot be resolved locally.
	ErrRevisionNotFound = snapshot.ErrRevisionNotFound

	// ErrHashUnavailable is returned when the digest algorithm is not available.
	ErrHashUnavailable = snapshot.ErrHashUnavailable

	// ErrMetadataUnavailable is returned when commit metadata cannot be read.
	ErrMetadataUnavailable = snapshot.ErrMetadataUnavailable
)

// Errors re-exported from registry.
var (
	// ErrRecordNotFound is returned when the ledger holds no record for a revision.
	ErrRecordNotFound = registry.ErrNotFound

	// ErrSubmissionRejected is returned when the ledger terminally refuses a record.
	ErrSubmissionRejected = registry.ErrSubmissionRejected

	// ErrSubmissionFailed is returned after transient failures exhaust the
	// retry budget. Advisory: never commit-fatal.
	ErrSubmissionFailed = registry.ErrSubmissionFailed
)

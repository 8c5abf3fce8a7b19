package registry

import "errors"

// Sentinel errors for ledger and client operations.
var (
	// ErrAlreadyExists is reported by a Ledger when the key is already
	// bound. Submit treats it as success; callers only see it through
	// the AlreadyExists status.
	ErrAlreadyExists = errors.New("registry: already recorded")

	// ErrNotFound is reported when no record exists for a key.
	ErrNotFound = errors.New("registry: record not found")

	// ErrSubmissionRejected is reported when the ledger refuses a record
	// for a terminal reason. Rejections are never retried.
	ErrSubmissionRejected = errors.New("registry: submission rejected")

	// ErrSubmissionFailed is returned by Submit after every attempt
	// failed for a retryable reason. It is advisory: a caller running
	// inside a commit hook must not fail the commit because of it.
	ErrSubmissionFailed = errors.New("registry: submission failed")

	// ErrUnavailable tags transient ledger failures (timeouts,
	// connection errors, server-side faults) that are safe to retry.
	ErrUnavailable = errors.New("registry: ledger unavailable")
)

// terminal reports whether err must not be retried.
func terminal(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSubmissionRejected)
}

package registry

import (
	"errors"
	"time"
)

// AuditEntry describes a single ledger attempt and its outcome.
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RevisionID string    `json:"revisionId"`
	Attempt    int       `json:"attempt"`
	Outcome    string    `json:"outcome"`
}

// AuditSink receives one entry per ledger attempt.
//
// Implementations must never fail the caller: the submit path does not
// block on audit problems. See the auditlog package for the file-backed
// implementation.
type AuditSink interface {
	Append(e AuditEntry)
}

// auditAttempt records one attempt. A nil sink drops the entry.
func (c *Client) auditAttempt(revisionID string, attempt int, outcome string) {
	if c.audit == nil {
		return
	}
	c.audit.Append(AuditEntry{
		Timestamp:  time.Now().UTC(),
		RevisionID: revisionID,
		Attempt:    attempt,
		Outcome:    outcome,
	})
}

// outcomeOf maps an attempt error to its audit outcome string. The
// vocabulary matches SubmitStatus.String.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrAlreadyExists):
		return "already-exists"
	case errors.Is(err, ErrSubmissionRejected):
		return "rejected"
	default:
		return "transient-failure"
	}
}

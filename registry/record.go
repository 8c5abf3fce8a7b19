package registry

import (
	"time"

	"github.com/opencontainers/go-digest"
)

// Record binds a revision to its snapshot fingerprint.
//
// A record is immutable once the ledger accepts it: later writes under
// the same revision id are rejected without touching the stored value.
// No file contents travel with the record, only the fingerprint.
type Record struct {
	RevisionID    string        `json:"revisionId"`
	Fingerprint   digest.Digest `json:"fingerprint"`
	Author        string        `json:"author"`
	AuthorContact string        `json:"authorContact"`
	Branch        string        `json:"branchName"`
	Message       string        `json:"message"`
	Timestamp     time.Time     `json:"timestamp"`
	Submitter     string        `json:"submitterIdentity"`
	ProjectLabel  string        `json:"projectLabel"`
}

// Receipt acknowledges an accepted submission. The id is assigned by the
// ledger and may be empty for implementations that do not issue one.
type Receipt struct {
	ID string `json:"receiptId,omitempty"`
}

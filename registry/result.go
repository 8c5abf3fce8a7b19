package registry

// SubmitStatus classifies the outcome of a Submit call. Callers are
// expected to switch over all four variants.
type SubmitStatus int

const (
	// Accepted means the ledger stored the record during this call.
	Accepted SubmitStatus = iota

	// AlreadyExists means the ledger already held a record for the
	// revision. Submit reports it as success: the goal is "this
	// revision is attested", not "this call inserted".
	AlreadyExists

	// Rejected means the ledger refused the record for a terminal
	// reason; retrying the same payload cannot help.
	Rejected

	// TransientFailure means every attempt failed for a retryable
	// reason and the attempt ceiling was reached.
	TransientFailure
)

func (s SubmitStatus) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case AlreadyExists:
		return "already-exists"
	case Rejected:
		return "rejected"
	case TransientFailure:
		return "transient-failure"
	default:
		return "unknown"
	}
}

// SubmitResult reports what a Submit call did.
type SubmitResult struct {
	Status   SubmitStatus
	Receipt  Receipt
	Attempts int

	// Err holds the terminal error for Rejected and TransientFailure.
	Err error
}

// Attested reports whether the revision is known to be recorded.
func (r *SubmitResult) Attested() bool {
	return r.Status == Accepted || r.Status == AlreadyExists
}

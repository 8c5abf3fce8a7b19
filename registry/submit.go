package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v5"
)

// Submit sends rec to the ledger.
//
// A duplicate key is success: the revision is attested either way.
// Terminal rejections are not retried and surface as
// ErrSubmissionRejected. Transient failures are retried with
// exponential backoff up to the configured attempt ceiling, then
// degraded to a TransientFailure result carrying ErrSubmissionFailed.
//
// The result is meaningful even when err is non-nil, so hook callers
// can inspect what happened, log it, and let the commit stand.
func (c *Client) Submit(ctx context.Context, rec *Record) (*SubmitResult, error) {
	res := &SubmitResult{}

	operation := func() (Receipt, error) {
		res.Attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		receipt, err := c.ledger.Put(attemptCtx, rec.RevisionID, rec)
		c.auditAttempt(rec.RevisionID, res.Attempts, outcomeOf(err))
		if err != nil {
			if terminal(err) {
				return Receipt{}, backoff.Permanent(err)
			}
			c.log().Debug("submit attempt failed",
				"revision", rec.RevisionID, "attempt", res.Attempts, "err", err)
			return Receipt{}, err
		}
		return receipt, nil
	}

	receipt, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.attempts)),
	)

	switch {
	case err == nil:
		res.Status = Accepted
		res.Receipt = receipt
		c.log().Debug("record accepted", "revision", rec.RevisionID, "receipt", receipt.ID)
		return res, nil

	case errors.Is(err, ErrAlreadyExists):
		res.Status = AlreadyExists
		c.log().Debug("record already present", "revision", rec.RevisionID)
		return res, nil

	case errors.Is(err, ErrSubmissionRejected):
		res.Status = Rejected
		res.Err = err
		return res, err

	default:
		res.Status = TransientFailure
		res.Err = fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
		return res, res.Err
	}
}

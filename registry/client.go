package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Defaults for the retry policy.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 2 * time.Second
)

// Client submits attestation records to a ledger and queries them back.
//
// The client performs no per-revision locking: concurrent submissions
// for the same revision are resolved by the ledger's uniqueness
// guarantee, and losing the race surfaces as AlreadyExists, which is
// success.
type Client struct {
	ledger   Ledger
	timeout  time.Duration
	attempts int
	delay    time.Duration
	audit    AuditSink
	logger   *slog.Logger
}

// New creates a Client for ledger with the given options.
func New(ledger Ledger, opts ...Option) *Client {
	c := &Client{
		ledger:   ledger,
		timeout:  DefaultTimeout,
		attempts: DefaultRetryAttempts,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// newBackOff builds the exponential backoff schedule for one call.
func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.delay
	return b
}

// retry runs op under the client's retry policy: each attempt bounded by
// the per-attempt timeout, terminal errors never retried, backoff sleep
// interruptible through ctx.
func retry[T any](ctx context.Context, c *Client, op func(context.Context) (T, error)) (T, error) {
	wrapped := func() (T, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		v, err := op(attemptCtx)
		if err != nil && terminal(err) {
			var zero T
			return zero, backoff.Permanent(err)
		}
		return v, err
	}
	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.attempts)),
	)
}

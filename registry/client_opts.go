package registry

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each individual ledger attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryAttempts sets the total attempt ceiling, first try included.
func WithRetryAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryDelay sets the initial backoff delay. Subsequent delays grow
// exponentially with jitter.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithAuditSink directs per-attempt audit entries to sink.
func WithAuditSink(sink AuditSink) Option {
	return func(c *Client) {
		c.audit = sink
	}
}

// WithLogger sets a logger for the client.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

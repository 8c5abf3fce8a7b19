package gitseal

import (
	"log/slog"
	"time"

	"github.com/gitseal/gitseal/auditlog"
	"github.com/gitseal/gitseal/registry"
)

// Option configures a Client.
type Option func(*Client) error

// --- Ledger options ---

// WithEndpoint sets the base URL of the ledger service.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		c.endpoint = endpoint
		return nil
	}
}

// WithCredential sets the access credential sent to the ledger service.
func WithCredential(token string) Option {
	return func(c *Client) error {
		c.credential = token
		return nil
	}
}

// WithLedger sets a custom ledger implementation, bypassing the HTTP
// adapter. Import github.com/gitseal/gitseal/registry/memledger for the
// in-memory implementation.
func WithLedger(ledger registry.Ledger) Option {
	return func(c *Client) error {
		c.ledger = ledger
		return nil
	}
}

// --- Retry policy options ---

// WithTimeout bounds each individual ledger attempt.
// Default: registry.DefaultTimeout (30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.timeout = d
		}
		return nil
	}
}

// WithRetryAttempts sets the total attempt ceiling, first try included.
// Default: registry.DefaultRetryAttempts (3).
func WithRetryAttempts(n int) Option {
	return func(c *Client) error {
		if n > 0 {
			c.attempts = n
		}
		return nil
	}
}

// WithRetryDelay sets the initial backoff delay.
// Default: registry.DefaultRetryDelay (2s).
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.delay = d
		}
		return nil
	}
}

// --- Record identity options ---

// WithSubmitter sets the submitter identity written into every record.
func WithSubmitter(identity string) Option {
	return func(c *Client) error {
		c.submitter = identity
		return nil
	}
}

// WithProjectLabel sets the project label written into every record.
func WithProjectLabel(label string) Option {
	return func(c *Client) error {
		c.project = label
		return nil
	}
}

// --- Audit options ---

// WithAuditLog appends every ledger attempt to the line-delimited log at
// path, creating it if needed.
func WithAuditLog(path string) Option {
	return func(c *Client) error {
		l, err := auditlog.Open(path)
		if err != nil {
			return err
		}
		c.audit = l
		return nil
	}
}

// WithAuditSink sets a custom audit sink.
func WithAuditSink(sink registry.AuditSink) Option {
	return func(c *Client) error {
		c.audit = sink
		return nil
	}
}

// WithLogger sets a logger for the client and everything it builds.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

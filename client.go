package gitseal

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gitseal/gitseal/registry"
	"github.com/gitseal/gitseal/registry/httpledger"
	"github.com/gitseal/gitseal/snapshot"
	"github.com/gitseal/gitseal/verify"
)

// Client provides high-level attestation operations for git
// repositories against a configured ledger.
//
// A Client is safe for concurrent use. It holds no per-revision state:
// idempotency comes from the ledger's uniqueness guarantee.
type Client struct {
	ledger     registry.Ledger
	endpoint   string
	credential string

	timeout  time.Duration
	attempts int
	delay    time.Duration

	submitter string
	project   string

	audit  registry.AuditSink
	logger *slog.Logger
}

// NewClient creates a Client with the given options.
//
// Either WithEndpoint or WithLedger is required. All configuration is
// explicit; nothing is read from the ambient environment.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		timeout:  registry.DefaultTimeout,
		attempts: registry.DefaultRetryAttempts,
		delay:    registry.DefaultRetryDelay,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.ledger == nil {
		if c.endpoint == "" {
			return nil, errors.New("gitseal: an endpoint or ledger is required")
		}
		var lopts []httpledger.Option
		if c.credential != "" {
			lopts = append(lopts, httpledger.WithCredential(c.credential))
		}
		if c.logger != nil {
			lopts = append(lopts, httpledger.WithLogger(c.logger))
		}
		c.ledger = httpledger.New(c.endpoint, lopts...)
	}
	return c, nil
}

// registryClient builds the retrying client around the ledger.
func (c *Client) registryClient() *registry.Client {
	opts := []registry.Option{
		registry.WithTimeout(c.timeout),
		registry.WithRetryAttempts(c.attempts),
		registry.WithRetryDelay(c.delay),
	}
	if c.audit != nil {
		opts = append(opts, registry.WithAuditSink(c.audit))
	}
	if c.logger != nil {
		opts = append(opts, registry.WithLogger(c.logger))
	}
	return registry.New(c.ledger, opts...)
}

// openRepo opens the repository enclosing dir.
func (c *Client) openRepo(dir string) (*snapshot.Repository, error) {
	var opts []snapshot.RepositoryOption
	if c.logger != nil {
		opts = append(opts, snapshot.WithLogger(c.logger))
	}
	return snapshot.OpenRepository(dir, opts...)
}

// verifier builds a Verifier for the repository enclosing dir.
func (c *Client) verifier(dir string) (*verify.Verifier, error) {
	repo, err := c.openRepo(dir)
	if err != nil {
		return nil, err
	}
	hasher, err := snapshot.NewHasher(repo)
	if err != nil {
		return nil, err
	}
	var vopts []verify.Option
	if c.logger != nil {
		vopts = append(vopts, verify.WithLogger(c.logger))
	}
	return verify.New(hasher, c.registryClient(), vopts...), nil
}

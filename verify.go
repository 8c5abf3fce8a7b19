package gitseal

import (
	"context"

	"github.com/gitseal/gitseal/verify"
)

// VerifyOption configures a Verify call.
type VerifyOption = verify.VerifyOption

// WithWorkTree hashes the tracked files as they currently exist on disk
// instead of the revision's committed tree.
func WithWorkTree() VerifyOption {
	return verify.WithWorkTree()
}

// Verify recomputes the fingerprint of revision in the repository at
// dir and compares it against the ledger's record.
func (c *Client) Verify(ctx context.Context, dir, revision string, opts ...VerifyOption) (*VerifyResult, error) {
	v, err := c.verifier(dir)
	if err != nil {
		return nil, err
	}
	return v.Verify(ctx, revision, opts...)
}

// VerifyAll verifies many revisions concurrently for bulk audits, at
// most limit at a time (limit <= 0 means all at once).
func (c *Client) VerifyAll(ctx context.Context, dir string, revisions []string, limit int) ([]*VerifyResult, error) {
	v, err := c.verifier(dir)
	if err != nil {
		return nil, err
	}
	return v.VerifyAll(ctx, revisions, limit)
}

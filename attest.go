package gitseal

import (
	"context"
	"time"

	"github.com/gitseal/gitseal/snapshot"
)

// Attest computes the fingerprint of revision in the repository at dir,
// assembles its attestation record and submits it to the ledger.
//
// The returned result is meaningful even when err is non-nil: transient
// exhaustion is reported both ways so hook callers can log the failure
// and let the commit stand. Only the local steps (hashing, metadata)
// produce hard errors with a nil result.
func (c *Client) Attest(ctx context.Context, dir, revision string) (*SubmitResult, error) {
	rec, err := c.BuildRecord(ctx, dir, revision)
	if err != nil {
		return nil, err
	}
	return c.registryClient().Submit(ctx, rec)
}

// BuildRecord assembles the attestation record for a revision without
// submitting it. Aside from the two local reads — the fingerprint and
// the commit metadata — it has no effects.
func (c *Client) BuildRecord(ctx context.Context, dir, revision string) (*Record, error) {
	repo, err := c.openRepo(dir)
	if err != nil {
		return nil, err
	}
	hasher, err := snapshot.NewHasher(repo)
	if err != nil {
		return nil, err
	}

	fp, err := hasher.Fingerprint(ctx, revision)
	if err != nil {
		return nil, err
	}
	meta, err := repo.Metadata(ctx, revision)
	if err != nil {
		return nil, err
	}

	return &Record{
		RevisionID:    meta.Revision,
		Fingerprint:   fp,
		Author:        meta.Author,
		AuthorContact: meta.AuthorContact,
		Branch:        meta.Branch,
		Message:       meta.Message,
		Timestamp:     time.Now().UTC(),
		Submitter:     c.submitter,
		ProjectLabel:  c.project,
	}, nil
}

// Fetch retrieves the attestation record stored for revisionID.
func (c *Client) Fetch(ctx context.Context, revisionID string) (*Record, error) {
	return c.registryClient().Fetch(ctx, revisionID)
}

// Exists reports whether the ledger holds a record for revisionID.
func (c *Client) Exists(ctx context.Context, revisionID string) (bool, error) {
	return c.registryClient().Exists(ctx, revisionID)
}

// Count reports the number of records the ledger holds.
func (c *Client) Count(ctx context.Context) (int, error) {
	return c.registryClient().Count(ctx)
}

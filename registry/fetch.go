package registry

import "context"

// Fetch retrieves the attestation record stored for revisionID.
//
// Absence surfaces as ErrNotFound without retrying; transient ledger
// failures follow the same retry policy as Submit.
func (c *Client) Fetch(ctx context.Context, revisionID string) (*Record, error) {
	return retry(ctx, c, func(ctx context.Context) (*Record, error) {
		return c.ledger.Get(ctx, revisionID)
	})
}

// Exists reports whether the ledger holds a record for revisionID.
func (c *Client) Exists(ctx context.Context, revisionID string) (bool, error) {
	return retry(ctx, c, func(ctx context.Context) (bool, error) {
		return c.ledger.Exists(ctx, revisionID)
	})
}

// Count reports the number of records the ledger holds.
func (c *Client) Count(ctx context.Context) (int, error) {
	return retry(ctx, c, func(ctx context.Context) (int, error) {
		return c.ledger.Count(ctx)
	})
}

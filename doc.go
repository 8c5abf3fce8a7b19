// Package gitseal binds git commits to deterministic content
// fingerprints and records the binding in an external append-only
// ledger.
//
// On each commit, a fingerprint of the full tracked file tree is
// computed and submitted, at most once per revision, to the ledger.
// Anyone holding the codebase can later recompute the fingerprint and
// compare it against the immutable record to detect rewritten history.
// File contents never leave the machine; only the fingerprint and
// commit metadata do.
//
// # Quick start
//
// Attest the current commit from a post-commit hook:
//
//	c, err := gitseal.NewClient(
//	    gitseal.WithEndpoint("https://ledger.example.com"),
//	    gitseal.WithSubmitter("ci@example.com"),
//	    gitseal.WithAuditLog("/var/log/gitseal/audit.jsonl"),
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := c.Attest(ctx, ".", "HEAD")
//
// Submission failures are advisory by design: Attest reports them, but
// a hook must never fail the commit because of one — the commit already
// happened, and the ledger accepts late submissions idempotently.
//
// Verify a revision later, anywhere the codebase is checked out:
//
//	res, err := c.Verify(ctx, ".", "abc123")
//	if res.Outcome == verify.Mismatch {
//	    // tamper signal
//	}
package gitseal

// Package verify checks local revision state against attestation records.
//
// This is the system's core correctness check: recompute the snapshot
// fingerprint, fetch the recorded one, compare. A Mismatch is the tamper
// signal and the one outcome that must be surfaced loudly.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/gitseal/gitseal/registry"
	"github.com/gitseal/gitseal/snapshot"
)

// Outcome classifies a verification.
type Outcome int

const (
	// Match means the recomputed fingerprint equals the recorded one.
	Match Outcome = iota

	// Mismatch means the fingerprints differ: the local tree is not the
	// one that was attested.
	Mismatch

	// NoRecord means the ledger holds nothing for the revision.
	NoRecord
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case NoRecord:
		return "no-record"
	default:
		return "unknown"
	}
}

// Result is the outcome of verifying one revision.
type Result struct {
	RevisionID string
	Outcome    Outcome
	Local      digest.Digest
	Recorded   digest.Digest
	Record     *registry.Record
}

// Fetcher is the registry query surface verification needs.
type Fetcher interface {
	Fetch(ctx context.Context, revisionID string) (*registry.Record, error)
}

// Verifier recomputes snapshot fingerprints and compares them against
// attestation records.
type Verifier struct {
	hasher  *snapshot.Hasher
	fetcher Fetcher
	logger  *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets a logger for the verifier.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// New creates a Verifier reading local state through hasher and records
// through fetcher.
func New(hasher *snapshot.Hasher, fetcher Fetcher, opts ...Option) *Verifier {
	v := &Verifier{hasher: hasher, fetcher: fetcher}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Verifier) log() *slog.Logger {
	if v.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return v.logger
}

// VerifyOption configures a single Verify call.
type VerifyOption func(*verifyConfig)

type verifyConfig struct {
	workTree bool
}

// WithWorkTree hashes the tracked files as they currently exist on disk
// instead of the revision's committed tree. This is how tampering with a
// checkout is detected against the record of the revision it claims to be.
func WithWorkTree() VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.workTree = true
	}
}

// Verify checks revision against its attestation record.
//
// Verification is read-only and idempotent; concurrent calls, including
// for the same revision, are safe.
func (v *Verifier) Verify(ctx context.Context, revision string, opts ...VerifyOption) (*Result, error) {
	cfg := verifyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	id, err := v.hasher.Repository().Resolve(ctx, revision)
	if err != nil {
		return nil, err
	}

	var local digest.Digest
	if cfg.workTree {
		local, err = v.hasher.WorkTreeFingerprint(ctx)
	} else {
		local, err = v.hasher.Fingerprint(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	rec, err := v.fetcher.Fetch(ctx, id)
	if errors.Is(err, registry.ErrNotFound) {
		v.log().Debug("no record", "revision", id)
		return &Result{RevisionID: id, Outcome: NoRecord, Local: local}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		RevisionID: id,
		Local:      local,
		Recorded:   rec.Fingerprint,
		Record:     rec,
	}
	if local == rec.Fingerprint {
		res.Outcome = Match
	} else {
		res.Outcome = Mismatch
		v.log().Warn("fingerprint mismatch",
			"revision", id, "local", local, "recorded", rec.Fingerprint)
	}
	return res, nil
}

// VerifyAll verifies revisions concurrently, at most limit at a time
// (limit <= 0 means all at once). Results keep the order of revisions.
func (v *Verifier) VerifyAll(ctx context.Context, revisions []string, limit int) ([]*Result, error) {
	results := make([]*Result, len(revisions))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, rev := range revisions {
		g.Go(func() error {
			res, err := v.Verify(ctx, rev)
			if err != nil {
				return fmt.Errorf("verify %s: %w", rev, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package gitseal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitseal/gitseal/auditlog"
	"github.com/gitseal/gitseal/internal/gittest"
	"github.com/gitseal/gitseal/registry"
	"github.com/gitseal/gitseal/registry/memledger"
	"github.com/gitseal/gitseal/verify"
)

func fastClient(t *testing.T, ledger registry.Ledger, extra ...Option) *Client {
	t.Helper()
	opts := []Option{
		WithLedger(ledger),
		WithRetryDelay(time.Millisecond),
		WithTimeout(time.Second),
		WithSubmitter("hook@ci.example.com"),
		WithProjectLabel("gitseal-test"),
	}
	c, err := NewClient(append(opts, extra...)...)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresEndpointOrLedger(t *testing.T) {
	t.Parallel()

	_, err := NewClient()
	assert.Error(t, err)

	_, err = NewClient(WithEndpoint("https://ledger.example.com"))
	assert.NoError(t, err)

	_, err = NewClient(WithLedger(memledger.New()))
	assert.NoError(t, err)
}

func TestBuildRecord(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	rev := r.Commit("initial import")

	c := fastClient(t, memledger.New())

	before := time.Now().UTC()
	rec, err := c.BuildRecord(context.Background(), r.Dir, "HEAD")
	require.NoError(t, err)

	assert.Equal(t, rev, rec.RevisionID)
	assert.NotEmpty(t, rec.Fingerprint)
	assert.Equal(t, "Test Author", rec.Author)
	assert.Equal(t, "author@example.com", rec.AuthorContact)
	assert.Equal(t, "main", rec.Branch)
	assert.Equal(t, "initial import", rec.Message)
	assert.Equal(t, "hook@ci.example.com", rec.Submitter)
	assert.Equal(t, "gitseal-test", rec.ProjectLabel)

	// Submission timestamp, not author date.
	assert.False(t, rec.Timestamp.Before(before))
	assert.Equal(t, time.UTC, rec.Timestamp.Location())
}

func TestBuildRecord_RevisionNotFound(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("a", "1")
	r.Commit("v1")

	c := fastClient(t, memledger.New())
	_, err := c.BuildRecord(context.Background(), r.Dir, "no-such-revision")
	assert.ErrorIs(t, err, ErrRevisionNotFound)
}

// TestAttestVerifyScenario walks the full protocol: attest, idempotent
// re-attest, verify, tamper, verify again.
func TestAttestVerifyScenario(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	r.WriteFile("main", "x=1")
	rev := r.Commit("v1")

	ledger := memledger.New()
	c := fastClient(t, ledger)
	ctx := context.Background()

	// First submission inserts.
	res, err := c.Attest(ctx, r.Dir, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, registry.Accepted, res.Status)
	assert.NotEmpty(t, res.Receipt.ID)

	n, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Second submission for the same revision is success without insert.
	res, err = c.Attest(ctx, r.Dir, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, registry.AlreadyExists, res.Status)
	assert.True(t, res.Attested())

	n, err = ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "duplicate submission must not grow the ledger")

	// The pristine checkout verifies clean.
	vres, err := c.Verify(ctx, r.Dir, rev)
	require.NoError(t, err)
	assert.Equal(t, verify.Match, vres.Outcome)

	// Tamper with a tracked file without creating a new revision; the
	// ledger still holds the original fingerprint.
	r.WriteFile("main", "x=2")

	vres, err = c.Verify(ctx, r.Dir, rev, WithWorkTree())
	require.NoError(t, err)
	assert.Equal(t, verify.Mismatch, vres.Outcome)
	assert.NotEqual(t, vres.Recorded, vres.Local)
}

// TestAttest_TotalOutage exercises the non-blocking contract: with the
// ledger unreachable, hashing and record building still complete, the
// audit log records a terminal failure, and the error is the advisory
// ErrSubmissionFailed rather than anything workflow-fatal.
func TestAttest_TotalOutage(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	r.Commit("v1")

	down := &downLedger{}
	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")

	c := fastClient(t, down,
		WithRetryAttempts(3),
		WithAuditLog(auditPath),
	)

	res, err := c.Attest(context.Background(), r.Dir, "HEAD")
	assert.ErrorIs(t, err, ErrSubmissionFailed)

	require.NotNil(t, res, "hashing and record building completed")
	assert.Equal(t, registry.TransientFailure, res.Status)
	assert.Equal(t, 3, res.Attempts)

	entries, err := auditlog.Read(auditPath)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Attempt)
		assert.Equal(t, "transient-failure", e.Outcome)
	}
}

func TestAttest_AuditTrailOnSuccess(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	rev := r.Commit("v1")

	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")
	c := fastClient(t, memledger.New(), WithAuditLog(auditPath))

	_, err := c.Attest(context.Background(), r.Dir, "HEAD")
	require.NoError(t, err)

	entries, err := auditlog.Read(auditPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rev, entries[0].RevisionID)
	assert.Equal(t, 1, entries[0].Attempt)
	assert.Equal(t, "accepted", entries[0].Outcome)
}

func TestFetch_RoundTrip(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	rev := r.Commit("v1")

	c := fastClient(t, memledger.New())
	ctx := context.Background()

	_, err := c.Attest(ctx, r.Dir, "HEAD")
	require.NoError(t, err)

	rec, err := c.Fetch(ctx, rev)
	require.NoError(t, err)
	assert.Equal(t, rev, rec.RevisionID)
	assert.Equal(t, "gitseal-test", rec.ProjectLabel)

	_, err = c.Fetch(ctx, "unattested")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestVerifyAll_BulkAudit(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	var revs []string
	for i := range 4 {
		r.WriteFile("file", fmt.Sprintf("content %d", i))
		revs = append(revs, r.Commit(fmt.Sprintf("v%d", i)))
	}

	c := fastClient(t, memledger.New())
	ctx := context.Background()

	for _, rev := range revs {
		_, err := c.Attest(ctx, r.Dir, rev)
		require.NoError(t, err)
	}

	results, err := c.VerifyAll(ctx, r.Dir, revs, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, verify.Match, res.Outcome, "revision %s", revs[i])
	}
}

// downLedger fails every operation with a transient error.
type downLedger struct{}

func (d *downLedger) Put(context.Context, string, *registry.Record) (registry.Receipt, error) {
	return registry.Receipt{}, fmt.Errorf("%w: connection refused", registry.ErrUnavailable)
}

func (d *downLedger) Get(context.Context, string) (*registry.Record, error) {
	return nil, fmt.Errorf("%w: connection refused", registry.ErrUnavailable)
}

func (d *downLedger) Exists(context.Context, string) (bool, error) {
	return false, fmt.Errorf("%w: connection refused", registry.ErrUnavailable)
}

func (d *downLedger) Count(context.Context) (int, error) {
	return 0, fmt.Errorf("%w: connection refused", registry.ErrUnavailable)
}

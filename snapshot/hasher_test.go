package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitseal/gitseal/internal/gittest"
)

func newTestHasher(t *testing.T, dir string) *Hasher {
	t.Helper()
	repo, err := OpenRepository(dir)
	require.NoError(t, err)
	hasher, err := NewHasher(repo)
	require.NoError(t, err)
	return hasher
}

func TestFingerprint_Deterministic(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("README", "hello")
	r.WriteFile("src/main.go", "package main\n")
	rev := r.Commit("initial")

	h := newTestHasher(t, r.Dir)

	first, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)
	second, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFingerprint_SameTreeDifferentRepos(t *testing.T) {
	t.Parallel()

	// Two repositories built independently, same tracked content. Commit
	// metadata differs (different object ids); the fingerprint must not.
	a := gittest.New(t)
	a.WriteFile("README", "hello")
	a.WriteFile("main", "x=1")
	revA := a.Commit("first message")

	b := gittest.New(t)
	b.WriteFile("main", "x=1")
	b.WriteFile("README", "hello")
	revB := b.Commit("a completely different message")

	fpA, err := newTestHasher(t, a.Dir).Fingerprint(context.Background(), revA)
	require.NoError(t, err)
	fpB, err := newTestHasher(t, b.Dir).Fingerprint(context.Background(), revB)
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB)
}

func TestFingerprint_SingleByteSensitivity(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("main", "x=1")
	rev1 := r.Commit("v1")
	r.WriteFile("main", "x=2")
	rev2 := r.Commit("v2")

	h := newTestHasher(t, r.Dir)

	fp1, err := h.Fingerprint(context.Background(), rev1)
	require.NoError(t, err)
	fp2, err := h.Fingerprint(context.Background(), rev2)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)

	// Older revisions keep their fingerprint as history grows.
	fp1Again, err := h.Fingerprint(context.Background(), rev1)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp1Again)
}

func TestFingerprint_PathSensitivity(t *testing.T) {
	t.Parallel()

	a := gittest.New(t)
	a.WriteFile("config", "same bytes")
	revA := a.Commit("v1")

	b := gittest.New(t)
	b.WriteFile("settings", "same bytes")
	revB := b.Commit("v1")

	fpA, err := newTestHasher(t, a.Dir).Fingerprint(context.Background(), revA)
	require.NoError(t, err)
	fpB, err := newTestHasher(t, b.Dir).Fingerprint(context.Background(), revB)
	require.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
}

func TestFingerprint_IgnoresUntrackedFiles(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("tracked", "content")
	rev := r.Commit("v1")

	h := newTestHasher(t, r.Dir)
	before, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)

	r.WriteFile("scratch.tmp", "never committed")
	after, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The work tree fingerprint is also blind to untracked files.
	wt, err := h.WorkTreeFingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, wt)
}

func TestFingerprint_RevisionNotFound(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("a", "1")
	r.Commit("v1")

	h := newTestHasher(t, r.Dir)
	_, err := h.Fingerprint(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrRevisionNotFound)
}

func TestWorkTreeFingerprint_DetectsMutation(t *testing.T) {
	t.Parallel()

	r := gittest.New(t)
	r.WriteFile("main", "x=1")
	rev := r.Commit("v1")

	h := newTestHasher(t, r.Dir)

	committed, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)

	clean, err := h.WorkTreeFingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, committed, clean, "clean checkout must hash like its commit")

	// Tamper with the tracked file without creating a new revision.
	r.WriteFile("main", "x=2")

	tampered, err := h.WorkTreeFingerprint(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, committed, tampered)

	// The committed tree is untouched by work tree mutation.
	committedAgain, err := h.Fingerprint(context.Background(), rev)
	require.NoError(t, err)
	assert.Equal(t, committed, committedAgain)
}

func TestFingerprint_SubdirectoriesSorted(t *testing.T) {
	t.Parallel()

	// Same tree committed in different orders must hash identically;
	// the canonical order comes from sorting, not from git's output.
	a := gittest.New(t)
	a.WriteFile("z/file", "zz")
	a.Commit("first")
	a.WriteFile("a/file", "aa")
	revA := a.Commit("second")

	b := gittest.New(t)
	b.WriteFile("a/file", "aa")
	b.WriteFile("z/file", "zz")
	revB := b.Commit("all at once")

	fpA, err := newTestHasher(t, a.Dir).Fingerprint(context.Background(), revA)
	require.NoError(t, err)
	fpB, err := newTestHasher(t, b.Dir).Fingerprint(context.Background(), revB)
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB)
}

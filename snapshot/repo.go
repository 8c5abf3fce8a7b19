package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Repository is a handle on a local git work tree.
//
// All introspection goes through the git binary; the repository itself
// is never modified.
type Repository struct {
	dir    string
	logger *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets a logger for git command tracing.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		r.logger = logger
	}
}

// OpenRepository opens the git repository enclosing dir.
//
// dir may be any path inside the work tree; the handle is anchored at
// the top level.
func OpenRepository(dir string, opts ...RepositoryOption) (*Repository, error) {
	r := &Repository{dir: dir}
	for _, opt := range opts {
		opt(r)
	}
	out, err := r.git(context.Background(), "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("open repository %q: %w", dir, err)
	}
	r.dir = strings.TrimSpace(string(out))
	return r, nil
}

// Dir returns the top level of the work tree.
func (r *Repository) Dir() string {
	return r.dir
}

func (r *Repository) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// git runs a git command in the repository and returns its stdout.
// Stderr is folded into the returned error.
func (r *Repository) git(ctx context.Context, args ...string) ([]byte, error) {
	r.log().Debug("running git", "args", args, "dir", r.dir)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
				return nil, fmt.Errorf("git %s: %s", args[0], msg)
			}
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// Resolve resolves a revision expression to a full commit identifier.
func (r *Repository) Resolve(ctx context.Context, revision string) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--verify", "--quiet", revision+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRevisionNotFound, revision)
	}
	return strings.TrimSpace(string(out)), nil
}

// RevisionMeta holds the commit metadata recorded alongside a fingerprint.
type RevisionMeta struct {
	Revision      string
	Author        string
	AuthorContact string
	Branch        string
	Message       string
	AuthorDate    time.Time
}

// Metadata reads commit metadata for a revision from the local store.
//
// The branch is the one currently checked out: attestation records are
// built at commit time, when the revision's branch is the active one.
func (r *Repository) Metadata(ctx context.Context, revision string) (RevisionMeta, error) {
	id, err := r.Resolve(ctx, revision)
	if err != nil {
		return RevisionMeta{}, err
	}

	out, err := r.git(ctx, "show", "-s", "--format=%an%x00%ae%x00%aI%x00%B", id)
	if err != nil {
		return RevisionMeta{}, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	parts := strings.SplitN(string(out), "\x00", 4)
	if len(parts) != 4 {
		return RevisionMeta{}, fmt.Errorf("%w: unexpected git show output for %s", ErrMetadataUnavailable, id)
	}
	date, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return RevisionMeta{}, fmt.Errorf("%w: bad author date %q", ErrMetadataUnavailable, parts[2])
	}

	branch, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return RevisionMeta{}, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	return RevisionMeta{
		Revision:      id,
		Author:        parts[0],
		AuthorContact: parts[1],
		AuthorDate:    date,
		Message:       strings.TrimSpace(parts[3]),
		Branch:        strings.TrimSpace(string(branch)),
	}, nil
}

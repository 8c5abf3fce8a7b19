package snapshot

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Hasher computes snapshot fingerprints of revisions in a repository.
type Hasher struct {
	repo *Repository
	alg  digest.Algorithm
}

// NewHasher creates a Hasher for repo.
//
// Availability of the canonical digest algorithm is checked here, once,
// so that per-revision calls never have to.
func NewHasher(repo *Repository) (*Hasher, error) {
	alg := digest.Canonical
	if !alg.Available() {
		return nil, fmt.Errorf("%w: %s", ErrHashUnavailable, alg)
	}
	return &Hasher{repo: repo, alg: alg}, nil
}

// Repository returns the repository the hasher reads from.
func (h *Hasher) Repository() *Repository {
	return h.repo
}

// treeEntry is one tracked file in a tree.
type treeEntry struct {
	mode string // git mode string; carries the executable bit
	blob string // object id of the file content, empty for work tree entries
	path string
}

// Fingerprint computes the snapshot fingerprint of a revision's
// committed tree.
//
// Tracked files are folded into the digest in lexicographic path order.
// Every field (path, mode, content) is length-prefixed, so no
// combination of paths and contents can collide by concatenation alone.
func (h *Hasher) Fingerprint(ctx context.Context, revision string) (digest.Digest, error) {
	id, err := h.repo.Resolve(ctx, revision)
	if err != nil {
		return "", err
	}

	entries, err := h.listTree(ctx, id)
	if err != nil {
		return "", err
	}

	digester := h.alg.Digester()
	for _, e := range entries {
		content, err := h.repo.git(ctx, "cat-file", "blob", e.blob)
		if err != nil {
			return "", fmt.Errorf("read %s at %s: %w", e.path, id, err)
		}
		writeEntry(digester.Hash(), e, content)
	}
	return digester.Digest(), nil
}

// WorkTreeFingerprint computes the snapshot fingerprint of the tracked
// files as they currently exist on disk.
//
// Comparing it against the fingerprint recorded for the checked-out
// revision is how tampering with a checkout is detected: same tracked
// set, mutated bytes, different fingerprint.
func (h *Hasher) WorkTreeFingerprint(ctx context.Context) (digest.Digest, error) {
	entries, err := h.listIndex(ctx)
	if err != nil {
		return "", err
	}

	digester := h.alg.Digester()
	for _, e := range entries {
		content, err := h.readWorkTreeFile(e)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", e.path, err)
		}
		writeEntry(digester.Hash(), e, content)
	}
	return digester.Digest(), nil
}

// readWorkTreeFile reads a tracked file's bytes as git would store them:
// symlinks contribute their target path, everything else its raw content.
func (h *Hasher) readWorkTreeFile(e treeEntry) ([]byte, error) {
	full := filepath.Join(h.repo.Dir(), filepath.FromSlash(e.path))
	if e.mode == gitmodeSymlink {
		target, err := os.Readlink(full)
		if err != nil {
			return nil, err
		}
		return []byte(target), nil
	}
	return os.ReadFile(full)
}

// writeEntry folds one file into the digest as length-prefixed fields.
func writeEntry(w hash.Hash, e treeEntry, content []byte) {
	var scratch [binary.MaxVarintLen64]byte
	field := func(b []byte) {
		n := binary.PutUvarint(scratch[:], uint64(len(b)))
		w.Write(scratch[:n])
		w.Write(b)
	}
	field([]byte(e.path))
	field([]byte(e.mode))
	field(content)
}

// listTree enumerates the tracked files of a commit, sorted by path.
func (h *Hasher) listTree(ctx context.Context, id string) ([]treeEntry, error) {
	out, err := h.repo.git(ctx, "ls-tree", "-r", "-z", id)
	if err != nil {
		return nil, err
	}

	var entries []treeEntry
	for _, line := range strings.Split(string(out), "\x00") {
		if line == "" {
			continue
		}
		// <mode> <type> <object>\t<path>
		meta, path, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("parse ls-tree entry %q", line)
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, fmt.Errorf("parse ls-tree entry %q", line)
		}
		// Submodule entries are commit references, not content.
		if fields[1] != "blob" {
			continue
		}
		entries = append(entries, treeEntry{mode: fields[0], blob: fields[2], path: path})
	}
	sortEntries(entries)
	return entries, nil
}

// listIndex enumerates the tracked files of the work tree, sorted by path.
func (h *Hasher) listIndex(ctx context.Context) ([]treeEntry, error) {
	out, err := h.repo.git(ctx, "ls-files", "-z", "-s")
	if err != nil {
		return nil, err
	}

	var entries []treeEntry
	for _, line := range strings.Split(string(out), "\x00") {
		if line == "" {
			continue
		}
		// <mode> <object> <stage>\t<path>
		meta, path, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("parse ls-files entry %q", line)
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, fmt.Errorf("parse ls-files entry %q", line)
		}
		if fields[0] == gitmodeGitlink {
			continue
		}
		entries = append(entries, treeEntry{mode: fields[0], path: path})
	}
	sortEntries(entries)
	return entries, nil
}

// Tree modes with special handling.
const (
	gitmodeGitlink = "160000" // submodule reference
	gitmodeSymlink = "120000" // symbolic link
)

// sortEntries orders entries by raw path bytes, the canonical order of
// the fingerprint stream.
func sortEntries(entries []treeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].path < entries[j].path
	})
}

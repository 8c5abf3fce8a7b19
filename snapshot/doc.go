// Package snapshot computes deterministic fingerprints of tracked file
// trees in a local git repository.
//
// A fingerprint is the canonical digest (sha256) of a length-prefixed
// stream of every tracked file's path, mode and raw content, folded in
// lexicographic path order. Identical trees always produce identical
// fingerprints regardless of host, filesystem or checkout time;
// untracked and ignored files never contribute.
package snapshot

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitseal/gitseal"
	"github.com/gitseal/gitseal/verify"
)

var (
	flagWorkTree bool
	flagParallel int
)

var verifyCmd = &cobra.Command{
	Use:   "verify [revision...]",
	Short: "Check revisions against their recorded fingerprints",
	Long: `Recompute the snapshot fingerprint of each revision (default HEAD) and
compare it against the ledger's record.

A mismatch means the local tree is not the one that was attested — the
tamper signal this tool exists for — and exits non-zero. Use --worktree
to hash the tracked files as they currently exist on disk instead of
the committed tree.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&flagWorkTree, "worktree", false, "hash the on-disk tracked files instead of the committed tree")
	verifyCmd.Flags().IntVar(&flagParallel, "parallel", 4, "concurrent verifications for bulk audits")
}

func runVerify(cmd *cobra.Command, args []string) error {
	revisions := args
	if len(revisions) == 0 {
		revisions = []string{"HEAD"}
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	var results []*gitseal.VerifyResult
	if flagWorkTree || len(revisions) == 1 {
		// The work tree is shared state; verify sequentially.
		var opts []gitseal.VerifyOption
		if flagWorkTree {
			opts = append(opts, gitseal.WithWorkTree())
		}
		for _, rev := range revisions {
			res, err := c.Verify(cmd.Context(), flagRepo, rev, opts...)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	} else {
		results, err = c.VerifyAll(cmd.Context(), flagRepo, revisions, flagParallel)
		if err != nil {
			return err
		}
	}

	failed := false
	for _, res := range results {
		switch res.Outcome {
		case verify.Match:
			fmt.Printf("%s  match  %s\n", res.RevisionID, res.Local)
		case verify.NoRecord:
			fmt.Printf("%s  no-record\n", res.RevisionID)
			failed = true
		case verify.Mismatch:
			fmt.Printf("%s  MISMATCH  local=%s recorded=%s\n", res.RevisionID, res.Local, res.Recorded)
			failed = true
		}
	}
	if failed {
		return errors.New("verification failed")
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitseal/gitseal/registry"
)

var attestCmd = &cobra.Command{
	Use:   "attest [revision]",
	Short: "Record a revision's fingerprint in the ledger",
	Long: `Compute the snapshot fingerprint of a revision (default HEAD), build
its attestation record and submit it to the ledger.

Attestation is advisory: this command exits 0 even when the ledger is
unreachable, so it is safe to call from a post-commit hook. Only local
failures (unknown revision, unreadable metadata) exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAttest,
}

func runAttest(cmd *cobra.Command, args []string) error {
	revision := "HEAD"
	if len(args) == 1 {
		revision = args[0]
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	res, err := c.Attest(cmd.Context(), flagRepo, revision)
	if res == nil {
		// Local failure before any submission was attempted.
		return err
	}

	switch res.Status {
	case registry.Accepted:
		fmt.Printf("attested: record accepted (receipt %s, %d attempt(s))\n", res.Receipt.ID, res.Attempts)
	case registry.AlreadyExists:
		fmt.Println("attested: revision already recorded")
	case registry.Rejected:
		fmt.Fprintf(os.Stderr, "warning: ledger rejected the record: %v\n", res.Err)
	case registry.TransientFailure:
		fmt.Fprintf(os.Stderr, "warning: ledger unreachable after %d attempt(s); commit is unaffected: %v\n", res.Attempts, res.Err)
	}

	// Never fail the enclosing commit workflow over a submission problem.
	return nil
}

// Command gitseal attests git commits against an append-only ledger
// and verifies checkouts against the recorded fingerprints.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gitseal:", err)
		os.Exit(1)
	}
}

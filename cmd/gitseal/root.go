package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitseal/gitseal"
)

var (
	flagConfig   string
	flagRepo     string
	flagEndpoint string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "gitseal",
	Short: "Attest git commits against an append-only ledger",
	Long: `gitseal binds each commit to a deterministic fingerprint of the full
tracked file tree and records the binding in an external append-only
ledger. Anyone holding the codebase can later recompute the fingerprint
and compare it against the immutable record to detect rewritten history.

No file contents ever leave the machine; only the fingerprint and the
commit metadata do.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/gitseal/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagRepo, "repo", "C", ".", "path inside the git repository to operate on")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "ledger endpoint URL (overrides config file)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(attestCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(countCmd)
}

// newClient builds the library client from the config file merged with
// command-line overrides.
func newClient() (*gitseal.Client, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagEndpoint != "" {
		cfg.Endpoint = flagEndpoint
	}

	opts := cfg.clientOptions()
	if flagVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, gitseal.WithLogger(logger))
	}
	return gitseal.NewClient(opts...)
}

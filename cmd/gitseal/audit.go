package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitseal/gitseal/auditlog"
)

var flagAuditTail int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recorded submission attempts",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&flagAuditTail, "tail", "n", 0, "show only the last n entries (0 = all)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if cfg.AuditLog == "" {
		return errors.New("no audit_log configured")
	}

	entries, err := auditlog.Read(cfg.AuditLog)
	if err != nil {
		return err
	}
	if flagAuditTail > 0 && len(entries) > flagAuditTail {
		entries = entries[len(entries)-flagAuditTail:]
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  attempt=%d  %s\n",
			e.Timestamp.Format("2006-01-02T15:04:05Z07:00"), e.RevisionID, e.Attempt, e.Outcome)
	}
	return nil
}

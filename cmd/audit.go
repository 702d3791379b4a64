package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/quickquote/internal/audit"
)

var auditPruneDays int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Manage quote explanation files",
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete quote explanations older than the retention period",
	RunE: func(cmd *cobra.Command, args []string) error {
		days := auditPruneDays
		if days == 0 {
			days = cfg.Audit.RetentionDays
		}

		w, err := audit.NewWriter(cfg.Audit.Dir)
		if err != nil {
			return eris.Wrap(err, "audit: open directory")
		}

		deleted, err := w.Prune(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return eris.Wrap(err, "audit: prune")
		}

		fmt.Printf("deleted %d explanation files older than %d days\n", deleted, days)
		return nil
	},
}

func init() {
	auditPruneCmd.Flags().IntVar(&auditPruneDays, "days", 0, "retention in days (default from config)")
	auditCmd.AddCommand(auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the most recent N entries")
	logCmd.Flags().StringVar(&logOperation, "op", "", "filter by operation (seal|open|run)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of seal, open and run operations, oldest first.

Examples:
  envseal vault log                 # Full log
  envseal vault log -n 10           # Last 10 entries
  envseal vault log --op open       # Only open operations
  envseal vault log --json          # JSON output`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		_, cfg, err := loadSettings()
		if err != nil {
			return reportNow(err)
		}
		Logger.Debugf("Reading audit log at %s", cfg.Audit.Path)

		result, err := workflows.Log(context.Background(), workflows.LogOptions{
			Audit:     auditLog(cfg),
			Operation: logOperation,
			Limit:     logLimit,
		})
		if err != nil {
			return reportNow(err)
		}
		Logger.Debugf("Parsed %d entries, %d after filtering", result.Total, len(result.Entries))

		if len(result.Entries) == 0 {
			if result.Total == 0 {
				fmt.Println(ui.Info.Sprint("ℹ") + " No audit log entries found.")
			} else {
				fmt.Println(ui.Info.Sprint("ℹ") + " No audit log entries found matching the filters.")
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal entries to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, e := range result.Entries {
			fmt.Println(formatLogLine(e))
		}
		return nil
	},
}

func formatLogLine(e audit.Entry) string {
	when := e.Timestamp
	if t, err := time.Parse(audit.TimestampFormat, e.Timestamp); err == nil {
		when = t.Local().Format("2006-01-02 15:04:05")
	}

	outcome := ui.Success.Sprint(e.Outcome)
	if e.Outcome != audit.OutcomeSuccess {
		outcome = ui.Error.Sprint(e.Outcome)
		if e.Error != "" {
			outcome += " " + ui.Muted.Sprint(e.Error)
		}
	}

	details := e.File
	if e.Artifact != "" {
		details += " → " + e.Artifact
	}

	return fmt.Sprintf("%-19s  %-12s  %-5s  %-8s  %s  %s", when, e.User, e.Operation, e.KDF, details, outcome)
}

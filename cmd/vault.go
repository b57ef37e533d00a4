package cmd

import (
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	VaultCmd = &cobra.Command{
		Use:   "vault",
		Short: "Seal and open env files with a passphrase",
		Long: `Seals plaintext env files into passphrase-protected artifacts and opens them again.

A sealed file is written next to its source with a .compiled suffix. The
passphrase is taken from --key, then ENVSEAL_PASSPHRASE, then a terminal prompt.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing vault command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	VaultCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	VaultCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	VaultCmd.AddCommand(sealCmd)
	VaultCmd.AddCommand(openCmd)
	VaultCmd.AddCommand(runCmd)
	VaultCmd.AddCommand(inspectCmd)
	VaultCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetVaultCmd returns the VaultCmd for testing.
func GetVaultCmd() *cobra.Command {
	return VaultCmd
}

// ResetGlobalState resets all vault command state to its defaults for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetSealCommandState()
	resetOpenCommandState()
	resetRunCommandState()
	resetInspectCommandState()
	resetLogCommandState()
	resetCobraFlagState(VaultCmd)
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// resetCobraFlagState clears the Changed mark on every flag of root and its
// subcommands, so one test's flags do not leak into the next.
func resetCobraFlagState(root *cobra.Command) {
	unmark := func(flag *pflag.Flag) { flag.Changed = false }
	root.Flags().VisitAll(unmark)
	root.PersistentFlags().VisitAll(unmark)
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}

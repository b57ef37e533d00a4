package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	runFile string
	runKey  string
	runKDF  kdfModeValue
)

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "sealed file to load")
	runCmd.Flags().StringVarP(&runKey, "key", "k", "", "passphrase (prefer "+PassphraseEnv+" or the prompt)")
	runCmd.Flags().Var(&runKDF, "kdf", kdfFlagUsage())
	_ = runCmd.MarkFlagRequired("file")
}

// resetRunCommandState resets the run command's global state for testing.
func resetRunCommandState() {
	runFile = ""
	runKey = ""
	runKDF = kdfModeValue{}
}

var runCmd = &cobra.Command{
	Use:   "run --file FILE -- COMMAND [ARGS...]",
	Short: "Runs a command with the variables from a sealed file",
	Long: `Opens a sealed file and runs COMMAND with its variables added to the
environment. Nothing is written to disk. Keys that are not valid variable
names are skipped. The command's exit status becomes envseal's.

Core dumps are disabled for envseal and the command where the platform allows.

Examples:
  envseal vault run --file .env.compiled -- npm start
  envseal vault run -f .env.compiled -- sh -c 'echo $DATABASE_URL'`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command: %s", strings.Join(args, " "))

		if err := utils.DisableCoreDumps(); err != nil {
			Logger.Warnf("Could not disable core dumps: %v", err)
		}

		_, cfg, err := loadSettings()
		if err != nil {
			return reportNow(err)
		}

		params, err := resolveKDF(cfg, &runKDF, cmd.Flags().Changed("kdf"))
		if err != nil {
			return reportNow(err)
		}

		passphrase, err := resolvePassphrase(runKey, cmd.Flags().Changed("key"), false)
		if err != nil {
			return reportNow(err)
		}
		defer secrets.Zero(passphrase)

		result, err := workflows.Run(context.Background(), workflows.RunOptions{
			Retrieve: workflows.RetrieveOptions{
				Path:       runFile,
				Passphrase: passphrase,
				KDF:        params,
				Audit:      auditLog(cfg),
			},
			Command: args,
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		})
		if err != nil {
			return reportNow(err)
		}

		if len(result.Skipped) > 0 {
			Logger.Warnf("Skipped keys that are not valid variable names: %s", strings.Join(result.Skipped, ", "))
		}
		if result.AuditErr != nil {
			Logger.Warnf("Failed to write audit entry: %v", result.AuditErr)
		}
		Logger.Infof("Command exited with status %d after injecting %d variables", result.ExitCode, result.Injected)

		if result.ExitCode != 0 {
			return &ExitError{Code: result.ExitCode}
		}
		return nil
	},
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/internal/envfile"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	openFile   string
	openKey    string
	openKDF    kdfModeValue
	openFormat string
	openOutput string
	openForce  bool
)

func init() {
	openCmd.Flags().StringVarP(&openFile, "file", "f", "", "sealed file to open")
	openCmd.Flags().StringVarP(&openKey, "key", "k", "", "passphrase (prefer "+PassphraseEnv+" or the prompt)")
	openCmd.Flags().Var(&openKDF, "kdf", kdfFlagUsage())
	openCmd.Flags().StringVar(&openFormat, "format", string(envfile.FormatDotenv), "output format (dotenv|json|export)")
	openCmd.Flags().StringVarP(&openOutput, "output", "o", "", "write to this file (mode 0600) instead of stdout")
	openCmd.Flags().BoolVar(&openForce, "force", false, "overwrite --output if it exists")
	_ = openCmd.MarkFlagRequired("file")
}

// resetOpenCommandState resets the open command's global state for testing.
func resetOpenCommandState() {
	openFile = ""
	openKey = ""
	openKDF = kdfModeValue{}
	openFormat = string(envfile.FormatDotenv)
	openOutput = ""
	openForce = false
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Decrypts a .compiled artifact and prints its variables",
	Long: `Opens a sealed file and prints its variables, or writes them to --output.

The artifact must be opened with the same --kdf mode it was sealed with.

Examples:
  envseal vault open --file .env.compiled
  envseal vault open -f .env.compiled --format json
  eval "$(envseal vault open -f .env.compiled --format export)"
  envseal vault open -f .env.compiled --output .env --force`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting open command")

		format, err := envfile.ParseFormat(openFormat)
		if err != nil {
			return reportNow(err)
		}

		if openOutput != "" && !openForce {
			if _, err := os.Stat(openOutput); err == nil {
				return reportNow(fmt.Errorf("%w: %s", kerrors.ErrOutputExists, openOutput))
			}
		}

		_, cfg, err := loadSettings()
		if err != nil {
			return reportNow(err)
		}

		params, err := resolveKDF(cfg, &openKDF, cmd.Flags().Changed("kdf"))
		if err != nil {
			return reportNow(err)
		}

		passphrase, err := resolvePassphrase(openKey, cmd.Flags().Changed("key"), false)
		if err != nil {
			return reportNow(err)
		}
		defer secrets.Zero(passphrase)

		spinner, cleanup := startSpinner("Opening sealed file...", verbose)
		defer cleanup()

		Logger.Debugf("Opening %s with kdf=%s", openFile, params.Mode)
		result, err := workflows.Retrieve(context.Background(), workflows.RetrieveOptions{
			Path:       openFile,
			Passphrase: passphrase,
			KDF:        params,
			Audit:      auditLog(cfg),
		})
		if err != nil {
			Logger.Debugf("Open of %s failed: %v", openFile, err)
			err = userFacingError(err)
			spinner.FinalMSG = formatVaultError(err)
			return reported(err)
		}
		if result.AuditErr != nil {
			Logger.Warnf("Failed to write audit entry: %v", result.AuditErr)
		}
		Logger.Infof("Opened %s: %d variables", openFile, len(result.Mapping))

		rendered, err := envfile.Render(result.Mapping, format)
		if err != nil {
			spinner.FinalMSG = formatVaultError(err)
			return reported(err)
		}

		if openOutput == "" {
			cleanup()
			fmt.Print(rendered)
			return nil
		}

		if err := utils.WriteFileAtomic(openOutput, []byte(rendered), 0600); err != nil {
			spinner.FinalMSG = formatVaultError(err)
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Wrote " + fmt.Sprint(len(result.Mapping)) + " " +
			utils.Plural(len(result.Mapping), "variable") + " to " + ui.Path.Sprint(openOutput) + "\n" +
			ui.Warning.Sprint("⚠") + " This file holds plaintext secrets; do not commit it"
		return nil
	},
}

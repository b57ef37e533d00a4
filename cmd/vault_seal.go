package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/envseal/internal/envfile"
	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	sealFiles []string
	sealKey   string
	sealKeep  bool
	sealKDF   kdfModeValue
)

func init() {
	sealCmd.Flags().StringArrayVarP(&sealFiles, "file", "f", nil, "env file, directory or glob to seal (repeatable)")
	sealCmd.Flags().StringVarP(&sealKey, "key", "k", "", "passphrase (prefer "+PassphraseEnv+" or the prompt)")
	sealCmd.Flags().BoolVarP(&sealKeep, "keep", "n", false, "keep the plaintext source after sealing")
	sealCmd.Flags().Var(&sealKDF, "kdf", kdfFlagUsage())
	_ = sealCmd.MarkFlagRequired("file")
}

// resetSealCommandState resets the seal command's global state for testing.
func resetSealCommandState() {
	sealFiles = nil
	sealKey = ""
	sealKeep = false
	sealKDF = kdfModeValue{}
}

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Encrypts env files into .compiled artifacts",
	Long: `Encrypts each env file with a key derived from your passphrase and writes
the result next to it as <file>.compiled (mode 0600).

The plaintext source is truncated and deleted afterwards unless --keep is given
or [seal] keep_source is set. Deletion is best-effort and does not scrub the
data from disk.

Examples:
  envseal vault seal --file .env
  envseal vault seal -f .env -f config/.env.prod --keep
  envseal vault seal --file "services/**/.env" --kdf pbkdf2
  ENVSEAL_PASSPHRASE=... envseal vault seal --file .env`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seal command")

		_, cfg, err := loadSettings()
		if err != nil {
			return reportNow(err)
		}

		params, err := resolveKDF(cfg, &sealKDF, cmd.Flags().Changed("kdf"))
		if err != nil {
			return reportNow(err)
		}
		if params.Mode == secrets.ModeBlake2s {
			Logger.Warnf("The blake2s mode has no salt or work factor; prefer pbkdf2 for new files")
		}

		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %w", err)
		}

		sources, err := envfile.ResolveSources(sealFiles, wd, cfg.Output.Suffix)
		if err != nil {
			return reportNow(err)
		}
		Logger.Debugf("Resolved %d source files: %v", len(sources), sources)

		passphrase, err := resolvePassphrase(sealKey, cmd.Flags().Changed("key"), true)
		if err != nil {
			return reportNow(err)
		}
		defer secrets.Zero(passphrase)

		keep := sealKeep || cfg.Seal.KeepSource
		log := auditLog(cfg)

		spinner, cleanup := startSpinner("Sealing environment files...", verbose)
		defer cleanup()

		var sealed []string
		var warnings []string
		for _, source := range sources {
			Logger.Infof("Sealing %s with kdf=%s", source, params.Mode)
			result, err := workflows.Seal(context.Background(), workflows.SealOptions{
				Source:     source,
				Passphrase: passphrase,
				KDF:        params,
				Suffix:     cfg.Output.Suffix,
				KeepSource: keep,
				Audit:      log,
			})
			if err != nil {
				Logger.Debugf("Seal of %s failed: %v", source, err)
				spinner.FinalMSG = sealedSoFar(sealed) + formatVaultError(err)
				return reported(err)
			}

			Logger.Debugf("Wrote %s: cipher_len=%d size=%d", result.SealedPath, result.CipherLen, result.Size)
			sealed = append(sealed, result.SealedPath)

			if result.CleanupErr != nil {
				Logger.Debugf("Cleanup of %s failed: %v", source, result.CleanupErr)
				warnings = append(warnings, ui.Warning.Sprint("⚠")+" Could not remove plaintext "+ui.Path.Sprint(source)+": "+result.CleanupErr.Error())
			}
			if result.AuditErr != nil {
				Logger.Warnf("Failed to write audit entry: %v", result.AuditErr)
			}
		}

		Logger.Infof("Seal command completed successfully. Created %d artifacts", len(sealed))

		var b strings.Builder
		b.WriteString(ui.Success.Sprint("✓") + " Sealed " + fmt.Sprint(len(sealed)) + " " + utils.Plural(len(sealed), "file") + ":")
		b.WriteString(utils.FormatPaths(sealed))
		for _, w := range warnings {
			b.WriteString(w + "\n")
		}
		if !keep && len(warnings) == 0 {
			b.WriteString(ui.Info.Sprint("→") + " Plaintext sources were removed " + ui.Muted.Sprint("not securely erased") + "\n")
		}
		openHint := "envseal vault open --file " + sealed[0]
		if cmd.Flags().Changed("kdf") {
			openHint += " --kdf " + string(params.Mode)
		}
		b.WriteString(ui.Info.Sprint("→") + " Open with " + ui.Code.Sprint(openHint))
		spinner.FinalMSG = b.String()
		return nil
	},
}

// sealedSoFar lists artifacts already written before a failure.
func sealedSoFar(sealed []string) string {
	if len(sealed) == 0 {
		return ""
	}
	return ui.Success.Sprint("✓") + " Sealed before the failure:" + utils.FormatPaths(sealed)
}

// reportNow prints the message for err and returns it as an ExitError.
// Used for failures that happen before any spinner is running.
func reportNow(err error) error {
	err = userFacingError(err)
	Logger.Debugf("%v", err)
	fmt.Println(formatVaultError(err))
	return reported(err)
}

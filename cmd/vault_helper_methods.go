package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/utils"
)

// PassphraseEnv names the environment variable read when --key is not given.
const PassphraseEnv = "ENVSEAL_PASSPHRASE"

// ExitError asks main to exit with Code. The failure has already been shown
// to the user, so main prints nothing more.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// reported marks err as already shown and exits with status 1.
func reported(err error) error {
	return &ExitError{Code: 1, Err: err}
}

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. The spinner draws on stderr so stdout stays clean for
// piping. The returned cleanup stops it and prints FinalMSG to stdout; it is
// safe to call more than once, so commands can stop the spinner before
// writing their own output.
//
// spinner.FinalMSG values do NOT need trailing newlines.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if quiet {
				log.SetOutput(os.Stderr)
			}

			finalMsg := ""
			if s.FinalMSG != "" {
				finalMsg = ui.EnsureNewline(s.FinalMSG)
				// Clear FinalMSG so s.Stop() doesn't print it.
				s.FinalMSG = ""
			}

			if quiet {
				s.Stop()
			}

			if finalMsg != "" {
				fmt.Print(finalMsg)
			}
		})
	}

	return s, cleanup
}

// loadSettings resolves config paths and loads the effective configuration.
func loadSettings() (*configs.Paths, *configs.Config, error) {
	paths, err := configs.ResolvePaths()
	if err != nil {
		return nil, nil, err
	}
	Logger.Debugf("User config: %s, project config: %q", paths.UserConfig, paths.ProjectConfig)

	cfg, err := configs.Load(paths)
	if err != nil {
		return nil, nil, err
	}
	Logger.Debugf("Effective config: kdf=%s suffix=%s keep_source=%t audit=%t",
		cfg.KDF.Mode, cfg.Output.Suffix, cfg.Seal.KeepSource, cfg.Audit.Enabled)
	return paths, cfg, nil
}

// auditLog returns the log configured in cfg.
func auditLog(cfg *configs.Config) *audit.Log {
	return audit.New(cfg.Audit.Path, cfg.Audit.Enabled)
}

// kdfModeValue is a pflag.Value accepting the names in secrets.KDFModes.
type kdfModeValue struct {
	mode secrets.KDFMode
}

func (v *kdfModeValue) String() string {
	return string(v.mode)
}

func (v *kdfModeValue) Set(s string) error {
	mode, err := secrets.ParseKDFMode(s)
	if err != nil {
		return err
	}
	v.mode = mode
	return nil
}

func (v *kdfModeValue) Type() string {
	return "mode"
}

func kdfFlagUsage() string {
	names := make([]string, len(secrets.KDFModes))
	for i, m := range secrets.KDFModes {
		names[i] = string(m)
	}
	return "key derivation mode (" + strings.Join(names, "|") + "), overrides [kdf] mode"
}

// resolveKDF takes the configured parameters and applies a --kdf override.
func resolveKDF(cfg *configs.Config, flag *kdfModeValue, changed bool) (secrets.KDFParams, error) {
	params, err := cfg.KDFParams()
	if err != nil {
		return params, err
	}
	if changed {
		params.Mode = flag.mode
	}
	return params, params.Validate()
}

// resolvePassphrase returns the passphrase from --key, then PassphraseEnv,
// then a hidden terminal prompt. With confirm set, a prompted passphrase
// must be typed twice.
func resolvePassphrase(key string, keyChanged, confirm bool) ([]byte, error) {
	if keyChanged {
		Logger.Debugf("Using passphrase from --key")
		if key == "" {
			return nil, kerrors.ErrEmptyPassphrase
		}
		return []byte(key), nil
	}

	if value, ok := os.LookupEnv(PassphraseEnv); ok {
		Logger.Debugf("Using passphrase from %s", PassphraseEnv)
		if value == "" {
			return nil, kerrors.ErrEmptyPassphrase
		}
		return []byte(value), nil
	}

	read, err := passphraseReader()
	if err != nil {
		return nil, err
	}

	passphrase, err := read("Passphrase: ")
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}

	if confirm {
		again, err := read("Confirm passphrase: ")
		if err != nil {
			secrets.Zero(passphrase)
			return nil, err
		}
		defer secrets.Zero(again)
		if !bytes.Equal(passphrase, again) {
			secrets.Zero(passphrase)
			return nil, kerrors.ErrPassphraseMismatch
		}
	}

	return passphrase, nil
}

func passphraseReader() (func(string) ([]byte, error), error) {
	if utils.IsTerminal() {
		return utils.ReadPassphrase, nil
	}
	if utils.IsTTYAvailable() {
		return utils.ReadPassphraseFromTTY, nil
	}
	return nil, fmt.Errorf("%w: no terminal to prompt on, use --key or %s", kerrors.ErrEmptyPassphrase, PassphraseEnv)
}

// userFacingError hides the difference between a failed integrity check and a
// failed authentication unless --debug is set.
func userFacingError(err error) error {
	if debug {
		return err
	}
	if errors.Is(err, kerrors.ErrIntegrityMismatch) || errors.Is(err, kerrors.ErrDecryptionFailed) {
		return kerrors.ErrCannotOpen
	}
	return err
}

// formatVaultError turns a workflow error into the final message shown to the user.
func formatVaultError(err error) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, kerrors.ErrInvalidPath):
		return cross + " " + err.Error()

	case errors.Is(err, kerrors.ErrNoFilesFound):
		return cross + " No env files matched\n" +
			arrow + " Pass a file with " + ui.Flag.Sprint("--file")

	case errors.Is(err, kerrors.ErrEmptyPassphrase):
		return cross + " " + err.Error() + "\n" +
			arrow + " Pass " + ui.Flag.Sprint("--key") + " or set " + ui.Code.Sprint(PassphraseEnv)

	case errors.Is(err, kerrors.ErrPassphraseMismatch):
		return cross + " Passphrases do not match"

	case errors.Is(err, kerrors.ErrCannotOpen):
		return cross + " Cannot open sealed file: wrong passphrase or tampered file\n" +
			arrow + " Check the passphrase and " + ui.Flag.Sprint("--kdf") + " mode, or rerun with " + ui.Flag.Sprint("--debug")

	case errors.Is(err, kerrors.ErrIntegrityMismatch):
		return cross + " Integrity check failed: the sealed file was modified or damaged"

	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return cross + " Authentication failed: wrong passphrase or wrong " + ui.Flag.Sprint("--kdf") + " mode"

	case errors.Is(err, kerrors.ErrCorruptEnvelope):
		return cross + " Not a sealed file, or it is truncated\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrMalformedPlaintext):
		return cross + " Sealed contents are not a valid variable set\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrInvalidSource):
		return cross + " Source file cannot be sealed as a variable set\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrInvalidKeyLength):
		return cross + " " + err.Error() + "\n" +
			arrow + " Use a shorter passphrase or " + ui.Code.Sprint("--kdf pbkdf2")

	case errors.Is(err, kerrors.ErrInvalidConfig),
		errors.Is(err, kerrors.ErrUnknownKDFMode):
		return cross + " " + err.Error()

	case errors.Is(err, kerrors.ErrOutputExists):
		return cross + " " + err.Error() + "\n" +
			arrow + " Pass " + ui.Flag.Sprint("--force") + " to overwrite it"

	default:
		return cross + " " + err.Error()
	}
}

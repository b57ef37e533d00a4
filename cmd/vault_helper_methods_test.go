package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
)

func TestKDFModeValue(t *testing.T) {
	var v kdfModeValue
	if v.Type() != "mode" {
		t.Errorf("Unexpected type %q", v.Type())
	}
	if err := v.Set("blake2s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v.String() != "blake2s" {
		t.Errorf("Expected blake2s, got %q", v.String())
	}
	if err := v.Set("scrypt"); !errors.Is(err, kerrors.ErrUnknownKDFMode) {
		t.Errorf("Expected ErrUnknownKDFMode, got %v", err)
	}
	if v.String() != "blake2s" {
		t.Error("A rejected value must not change the mode")
	}
	if !strings.Contains(kdfFlagUsage(), "pbkdf2|blake2s") {
		t.Errorf("Usage should list modes, got %q", kdfFlagUsage())
	}
}

func TestResolveKDF(t *testing.T) {
	cfg := configs.Default()

	params, err := resolveKDF(cfg, &kdfModeValue{mode: secrets.ModeBlake2s}, false)
	if err != nil {
		t.Fatalf("resolveKDF failed: %v", err)
	}
	if params.Mode != secrets.ModePBKDF2 {
		t.Errorf("Unchanged flag must not override config, got %s", params.Mode)
	}

	params, err = resolveKDF(cfg, &kdfModeValue{mode: secrets.ModeBlake2s}, true)
	if err != nil {
		t.Fatalf("resolveKDF failed: %v", err)
	}
	if params.Mode != secrets.ModeBlake2s {
		t.Errorf("Expected flag override, got %s", params.Mode)
	}
}

func TestResolvePassphrase(t *testing.T) {
	t.Setenv(PassphraseEnv, "from-env")

	got, err := resolvePassphrase("from-flag", true, true)
	if err != nil || string(got) != "from-flag" {
		t.Errorf("Expected --key to win, got %q, %v", got, err)
	}

	got, err = resolvePassphrase("", false, true)
	if err != nil || string(got) != "from-env" {
		t.Errorf("Expected env passphrase, got %q, %v", got, err)
	}

	if _, err := resolvePassphrase("", true, false); !errors.Is(err, kerrors.ErrEmptyPassphrase) {
		t.Errorf("Expected ErrEmptyPassphrase for empty --key, got %v", err)
	}

	t.Setenv(PassphraseEnv, "")
	if _, err := resolvePassphrase("", false, false); !errors.Is(err, kerrors.ErrEmptyPassphrase) {
		t.Errorf("Expected ErrEmptyPassphrase for empty env, got %v", err)
	}
}

func TestUserFacingError(t *testing.T) {
	defer ResetGlobalState()

	tests := []struct {
		err      error
		collapse bool
	}{
		{fmt.Errorf("wrapped: %w", kerrors.ErrIntegrityMismatch), true},
		{kerrors.ErrDecryptionFailed, true},
		{kerrors.ErrCorruptEnvelope, false},
		{kerrors.ErrInvalidPath, false},
	}

	for _, tt := range tests {
		SetDebug(false)
		got := userFacingError(tt.err)
		if tt.collapse && got != kerrors.ErrCannotOpen {
			t.Errorf("Expected %v to collapse, got %v", tt.err, got)
		}
		if !tt.collapse && got != tt.err {
			t.Errorf("Expected %v unchanged, got %v", tt.err, got)
		}

		SetDebug(true)
		if got := userFacingError(tt.err); got != tt.err {
			t.Errorf("Expected %v unchanged with debug, got %v", tt.err, got)
		}
	}
}

func TestFormatVaultError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		err  error
		want string
	}{
		{kerrors.ErrCannotOpen, "Cannot open sealed file"},
		{kerrors.ErrIntegrityMismatch, "Integrity check failed"},
		{kerrors.ErrDecryptionFailed, "Authentication failed"},
		{kerrors.ErrPassphraseMismatch, "Passphrases do not match"},
		{kerrors.ErrNoFilesFound, "No env files matched"},
		{fmt.Errorf("%w: out.env", kerrors.ErrOutputExists), "--force"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		got := formatVaultError(tt.err)
		if !strings.HasPrefix(got, "✗") {
			t.Errorf("Expected error marker for %v, got %q", tt.err, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Expected %q in %q", tt.want, got)
		}
	}
}

func TestExitError(t *testing.T) {
	err := reported(kerrors.ErrInvalidPath)
	if !errors.Is(err, kerrors.ErrInvalidPath) {
		t.Error("ExitError should unwrap to its cause")
	}
	if exitCode(err) != 1 {
		t.Errorf("Expected code 1, got %d", exitCode(err))
	}
	if (&ExitError{Code: 3}).Error() != "exit status 3" {
		t.Error("Unexpected message for ExitError without cause")
	}
}

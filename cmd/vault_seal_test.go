package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

func TestSealCommand(t *testing.T) {
	workDir := setupTestEnvironment(t)
	source := filepath.Join(workDir, ".env")
	writeTestFile(t, source, "API_KEY=abc123\nDEBUG=true\n")

	output, err := runCLI(t, "vault", "seal", "--key", "correct-horse", "--file", ".env")
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "Sealed 1 file") {
		t.Errorf("Expected success message, got: %s", output)
	}
	if !strings.Contains(output, ".env.compiled") {
		t.Errorf("Expected output path in message, got: %s", output)
	}

	data, err := os.ReadFile(source + ".compiled")
	if err != nil {
		t.Fatalf("Artifact not written: %v", err)
	}
	if len(data) != envelope.HeaderSize+len(`{"API_KEY":"abc123","DEBUG":"true"}`) {
		t.Errorf("Unexpected artifact length %d", len(data))
	}

	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("Expected plaintext source to be removed")
	}
}

func TestSealCommandKeep(t *testing.T) {
	workDir := setupTestEnvironment(t)
	source := filepath.Join(workDir, ".env")
	writeTestFile(t, source, "A=1\n")

	output, err := runCLI(t, "vault", "seal", "-k", "pw", "-f", ".env", "-n", "--kdf", "blake2s")
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}

	if _, err := os.Stat(source); err != nil {
		t.Errorf("Expected source to be kept: %v", err)
	}
	if !strings.Contains(output, "--kdf blake2s") {
		t.Errorf("Expected open hint to carry the kdf mode, got: %s", output)
	}
	if !strings.Contains(output, "blake2s mode has no salt") {
		t.Errorf("Expected weak mode warning, got: %s", output)
	}
}

func TestSealCommandKeepFromConfig(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".envseal.toml"), "[seal]\nkeep_source = true\n")
	source := filepath.Join(workDir, ".env")
	writeTestFile(t, source, "A=1\n")

	if output, err := runCLI(t, "vault", "seal", "-k", "pw", "-f", ".env", "--kdf", "blake2s"); err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("Expected keep_source from project config: %v", err)
	}
}

func TestSealCommandMultipleFiles(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, "api", ".env"), "A=1\n")
	writeTestFile(t, filepath.Join(workDir, "web", ".env.local"), "B=2\n")
	writeTestFile(t, filepath.Join(workDir, "web", "README.md"), "not an env file\n")

	output, err := runCLI(t, "vault", "seal", "-k", "pw", "--kdf", "blake2s", "-f", "**/.env*")
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sealed 2 files") {
		t.Errorf("Expected two files sealed, got: %s", output)
	}

	for _, p := range []string{"api/.env.compiled", "web/.env.local.compiled"} {
		if _, err := os.Stat(filepath.Join(workDir, p)); err != nil {
			t.Errorf("Expected %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(workDir, "web", "README.md.compiled")); !os.IsNotExist(err) {
		t.Error("Non-env file should not be sealed")
	}
}

func TestSealCommandDirectoryLeavesOtherFiles(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=1\n")
	writeTestFile(t, filepath.Join(workDir, ".envrc"), "use nix\n")
	writeTestFile(t, filepath.Join(workDir, "notes.environment.md"), "# notes\n")

	output, err := runCLI(t, "vault", "seal", "-k", "pw", "--kdf", "blake2s", "-f", ".")
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sealed 1 file") {
		t.Errorf("Expected one file sealed, got: %s", output)
	}

	for _, name := range []string{".envrc", "notes.environment.md"} {
		if _, err := os.Stat(filepath.Join(workDir, name)); err != nil {
			t.Errorf("Expected %s to be left in place: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(workDir, name+".compiled")); !os.IsNotExist(err) {
			t.Errorf("%s should not be sealed", name)
		}
	}
}

func TestSealCommandPassphraseFromEnv(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=1\n")
	t.Setenv(PassphraseEnv, "from-env")

	if output, err := runCLI(t, "vault", "seal", "-f", ".env", "--kdf", "blake2s"); err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}

	output, err := runCLI(t, "vault", "open", "-f", ".env.compiled", "--kdf", "blake2s")
	if err != nil {
		t.Fatalf("open failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "A=1") {
		t.Errorf("Expected variables in output, got: %s", output)
	}
}

func TestSealCommandInvalidPath(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "vault", "seal", "-k", "pw", "-f", "missing.env")
	if exitCode(err) != 1 {
		t.Fatalf("Expected exit code 1, got %d (%v)", exitCode(err), err)
	}
	if !errors.Is(err, kerrors.ErrInvalidPath) {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("Expected error marker in output, got: %s", output)
	}
}

func TestSealCommandEmptyKey(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=1\n")

	output, err := runCLI(t, "vault", "seal", "--key", "", "-f", ".env")
	if !errors.Is(err, kerrors.ErrEmptyPassphrase) {
		t.Fatalf("Expected ErrEmptyPassphrase, got %v", err)
	}
	if !strings.Contains(output, PassphraseEnv) {
		t.Errorf("Expected hint naming %s, got: %s", PassphraseEnv, output)
	}
	if _, err := os.Stat(filepath.Join(workDir, ".env")); err != nil {
		t.Error("Source must survive a failed seal")
	}
}

func TestSealCommandUnknownKDF(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=1\n")

	_, err := runCLI(t, "vault", "seal", "-k", "pw", "-f", ".env", "--kdf", "md5")
	if err == nil {
		t.Fatal("Expected flag parsing to reject an unknown mode")
	}
}

// The iteration count is not stored in artifacts, so it cannot be configured.
func TestSealCommandRejectsIterationsSetting(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".envseal.toml"), "[kdf]\nmode = \"pbkdf2\"\niterations = 600000\n")
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=1\n")

	_, err := runCLI(t, "vault", "seal", "-k", "pw", "-f", ".env")
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestSealCommandInvalidUTF8Source(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".env"), "A=\xff\xfe\n")

	output, err := runCLI(t, "vault", "seal", "-k", "pw", "--kdf", "blake2s", "-f", ".env")
	if !errors.Is(err, kerrors.ErrInvalidSource) {
		t.Fatalf("Expected ErrInvalidSource, got %v", err)
	}
	if !strings.Contains(output, "cannot be sealed as a variable set") {
		t.Errorf("Expected invalid source message, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(workDir, ".env")); err != nil {
		t.Errorf("Source should be kept after a failed seal: %v", err)
	}
}

func TestSealCommandRequiresFile(t *testing.T) {
	setupTestEnvironment(t)

	_, err := runCLI(t, "vault", "seal", "-k", "pw")
	if err == nil {
		t.Fatal("Expected an error without --file")
	}
}

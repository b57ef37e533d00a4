package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

func TestConfigInitUser(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Wrote default configuration") {
		t.Errorf("Expected success message, got: %s", output)
	}

	paths, err := configs.ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}
	if _, err := os.Stat(paths.UserConfig); err != nil {
		t.Fatalf("Expected user config at %s: %v", paths.UserConfig, err)
	}

	loaded := &configs.Config{}
	if err := configs.LoadTOML(paths.UserConfig, loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.KDF != configs.Default().KDF {
		t.Errorf("Expected default kdf settings, got %+v", loaded.KDF)
	}
}

func TestConfigInitProjectExisting(t *testing.T) {
	workDir := setupTestEnvironment(t)
	projectConfig := filepath.Join(workDir, configs.ProjectConfigName)

	if output, err := runCLI(t, "config", "init", "--project"); err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	info, err := os.Stat(projectConfig)
	if err != nil {
		t.Fatalf("Expected project config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600, got %o", info.Mode().Perm())
	}

	writeTestFile(t, projectConfig, "[seal]\nkeep_source = true\n")

	output, err := runCLI(t, "config", "init", "-p")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected warning, got: %s", output)
	}
	data, _ := os.ReadFile(projectConfig)
	if !strings.Contains(string(data), "keep_source = true") {
		t.Error("Existing file must not be overwritten without --force")
	}

	if _, err := runCLI(t, "config", "init", "-p", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	data, _ = os.ReadFile(projectConfig)
	if strings.Contains(string(data), "keep_source = true") {
		t.Error("Expected --force to reset the file")
	}
}

func TestConfigShow(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, configs.ProjectConfigName), "[kdf]\nmode = \"blake2s\"\n\n[output]\nsuffix = \".sealed\"\n")

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, output)
	}
	for _, want := range []string{"Effective Configuration", "blake2s", ".sealed", "Sources", configs.ProjectConfigName} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	stdout, err := captureStdout(func() error {
		return createTestCLI("config", "show", "--json").Execute()
	})
	ResetConfigState()
	if err != nil {
		t.Fatalf("config show --json failed: %v", err)
	}
	var cfg configs.Config
	if err := json.Unmarshal([]byte(stdout), &cfg); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", stdout, err)
	}
	if cfg.KDF.Mode != "blake2s" || cfg.Output.Suffix != ".sealed" {
		t.Errorf("Unexpected effective config %+v", cfg)
	}
	if cfg.Audit.Path == "" {
		t.Error("Expected the default audit path to be filled in")
	}
}

func TestConfigShowProject(t *testing.T) {
	workDir := setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show", "--project")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "No "+configs.ProjectConfigName+" found") {
		t.Errorf("Expected missing project message, got: %s", output)
	}

	writeTestFile(t, filepath.Join(workDir, configs.ProjectConfigName), "[seal]\nkeep_source = true\n")
	output, err = runCLI(t, "config", "show", "-p")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "Project Configuration") || !strings.Contains(output, "true") {
		t.Errorf("Expected project values, got: %s", output)
	}
}

func TestConfigShowFixedIterations(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "300000 (fixed)") {
		t.Errorf("Expected the fixed pbkdf2 iteration count, got: %s", output)
	}
}

func TestConfigShowInvalid(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, configs.ProjectConfigName), "[kdf]\nmod = \"pbkdf2\"\n")

	_, err := runCLI(t, "config", "show")
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for an unknown key, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode(err))
	}
}

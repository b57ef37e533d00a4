package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/audit"
)

func TestLogCommandEmpty(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "vault", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No audit log entries found") {
		t.Errorf("Expected empty message, got: %s", output)
	}
}

func TestLogCommandRecordsOperations(t *testing.T) {
	workDir := setupTestEnvironment(t)
	sealForTest(t, workDir, "A=1\n", "right")

	if _, err := runCLI(t, "vault", "open", "-k", "right", "-f", ".env.compiled", "--kdf", "blake2s"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := runCLI(t, "vault", "open", "-k", "wrong", "-f", ".env.compiled", "--kdf", "blake2s"); err == nil {
		t.Fatal("Expected open with the wrong key to fail")
	}

	stdout, err := captureStdout(func() error {
		return createTestCLI("vault", "log", "--json").Execute()
	})
	ResetGlobalState()
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	var entries []audit.Entry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", stdout, err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Operation != audit.OpSeal || entries[0].Outcome != audit.OutcomeSuccess {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if filepath.Base(entries[0].File) != ".env" || !filepath.IsAbs(entries[0].File) {
		t.Errorf("Expected seal entry to name the source, got %q", entries[0].File)
	}
	if entries[0].KDF != "blake2s" {
		t.Errorf("Expected kdf blake2s, got %q", entries[0].KDF)
	}
	if entries[2].Outcome != audit.OutcomeFailure || entries[2].Error != "decryption_failed" {
		t.Errorf("Expected the distinct cause in the log, got %+v", entries[2])
	}

	output, err := runCLI(t, "vault", "log", "--op", "open", "-n", "1")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one line, got %d: %s", len(lines), output)
	}
	if !strings.Contains(lines[0], "failure") || !strings.Contains(lines[0], "decryption_failed") {
		t.Errorf("Expected the failed open, got: %s", lines[0])
	}

	output, err = runCLI(t, "vault", "log", "--op", "run")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "matching the filters") {
		t.Errorf("Expected filter message, got: %s", output)
	}
}

func TestLogCommandDisabled(t *testing.T) {
	workDir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(workDir, ".envseal.toml"), "[audit]\nenabled = false\n")
	sealForTest(t, workDir, "A=1\n", "pw")

	output, err := runCLI(t, "vault", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No audit log entries found") {
		t.Errorf("Expected no entries with audit disabled, got: %s", output)
	}
}

func TestFormatLogLine(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	line := formatLogLine(audit.Entry{
		Timestamp: "not-a-time",
		User:      "alice",
		Operation: audit.OpSeal,
		File:      ".env",
		Artifact:  ".env.compiled",
		Outcome:   audit.OutcomeSuccess,
		KDF:       "pbkdf2",
	})

	for _, want := range []string{"not-a-time", "alice", "seal", "pbkdf2", ".env → .env.compiled", "success"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in %q", want, line)
		}
	}
}

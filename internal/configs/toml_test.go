package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := Default()
	original.KDF.Mode = "blake2s"
	original.Seal.KeepSource = true

	if err := SaveTOML(path, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions 0600, got %o", info.Mode().Perm())
	}

	loaded := &Config{}
	if err := LoadTOML(path, loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("Expected %+v, got %+v", *original, *loaded)
	}
}

func TestLoadTOMLNonExistentFile(t *testing.T) {
	cfg := &Config{}
	if err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), cfg); err == nil {
		t.Fatal("Expected error for non-existent file")
	}
}

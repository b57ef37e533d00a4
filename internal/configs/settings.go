package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envseal/internal/utils"
)

const (
	// ProjectConfigName is the per-project override file, found by walking up
	// from the working directory.
	ProjectConfigName = ".envseal.toml"

	userConfigName = "config.toml"
	auditLogName   = "audit.jsonl"
)

// Paths locates the files envseal reads and writes.
type Paths struct {
	// UserConfig is <UserConfigDir>/envseal/config.toml.
	UserConfig string
	// ProjectConfig is the nearest .envseal.toml, or "" when there is none.
	ProjectConfig string
	// DataDir holds the audit log by default.
	DataDir string
}

// ResolvePaths finds the user and project configuration files.
func ResolvePaths() (*Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	projectConfig, err := utils.FindUpwards(ProjectConfigName)
	if err != nil {
		return nil, fmt.Errorf("error finding project config: %w", err)
	}

	return &Paths{
		UserConfig:    filepath.Join(configDir, "envseal", userConfigName),
		ProjectConfig: projectConfig,
		DataDir:       filepath.Join(dataDir, "envseal"),
	}, nil
}

// DefaultAuditPath is where the audit log lives unless [audit] path is set.
func (p *Paths) DefaultAuditPath() string {
	return filepath.Join(p.DataDir, auditLogName)
}

// Load builds the effective configuration: defaults, then the user file,
// then the project file. Missing files are skipped.
func Load(paths *Paths) (*Config, error) {
	cfg := Default()

	for _, path := range []string{paths.UserConfig, paths.ProjectConfig} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := LoadTOML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Audit.Path == "" {
		cfg.Audit.Path = paths.DefaultAuditPath()
	}

	return cfg, nil
}

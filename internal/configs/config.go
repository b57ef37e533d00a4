package configs

import (
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
)

// DefaultSuffix is appended to a source path to name its sealed artifact.
const DefaultSuffix = ".compiled"

// Config is the effective envseal configuration.
type Config struct {
	KDF    KDFConfig    `toml:"kdf" json:"kdf"`
	Output OutputConfig `toml:"output" json:"output"`
	Seal   SealConfig   `toml:"seal" json:"seal"`
	Audit  AuditConfig  `toml:"audit" json:"audit"`
}

// KDFConfig selects the key derivation mode. The pbkdf2 iteration count is
// fixed and cannot be configured.
type KDFConfig struct {
	Mode string `toml:"mode" json:"mode"`
}

type OutputConfig struct {
	Suffix string `toml:"suffix" json:"suffix"`
}

type SealConfig struct {
	KeepSource bool `toml:"keep_source" json:"keep_source"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path overrides the default log location. Empty means DefaultAuditPath.
	Path string `toml:"path,omitempty" json:"path,omitempty"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	params := secrets.DefaultKDFParams()
	return &Config{
		KDF:    KDFConfig{Mode: string(params.Mode)},
		Output: OutputConfig{Suffix: DefaultSuffix},
		Audit:  AuditConfig{Enabled: true},
	}
}

// Validate rejects values that would produce unusable artifacts.
func (c *Config) Validate() error {
	params, err := c.KDFParams()
	if err != nil {
		return fmt.Errorf("%w: [kdf] %w", kerrors.ErrInvalidConfig, err)
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: [kdf] %w", kerrors.ErrInvalidConfig, err)
	}

	if c.Output.Suffix == "" {
		return fmt.Errorf("%w: [output] suffix cannot be empty", kerrors.ErrInvalidConfig)
	}
	if strings.ContainsRune(c.Output.Suffix, os.PathSeparator) || strings.ContainsRune(c.Output.Suffix, '/') {
		return fmt.Errorf("%w: [output] suffix %q cannot contain a path separator", kerrors.ErrInvalidConfig, c.Output.Suffix)
	}

	return nil
}

// KDFParams converts the [kdf] table into derivation parameters.
func (c *Config) KDFParams() (secrets.KDFParams, error) {
	mode, err := secrets.ParseKDFMode(c.KDF.Mode)
	if err != nil {
		return secrets.KDFParams{}, err
	}
	return secrets.KDFParams{Mode: mode}, nil
}

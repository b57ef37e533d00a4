package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// SaveTOML writes data to filePath, creating parent directories as needed.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	// #nosec G304 -- Path comes from the resolved config location.
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML decodes filePath on top of data. Keys absent from the file keep
// their current values, so callers can layer files over defaults.
// Keys that do not map to a field are reported as ErrInvalidConfig.
func LoadTOML(filePath string, data interface{}) error {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kerrors.ErrInvalidConfig, filePath, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s: unknown keys %s", kerrors.ErrInvalidConfig, filePath, strings.Join(keys, ", "))
	}

	return nil
}

package workflows

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// openRegular opens path for reading and returns its size. Missing paths and
// anything that is not a regular file fail with ErrInvalidPath.
func openRegular(path string) (*os.File, int64, error) {
	// #nosec G304 -- Reading the artifact the user asked for.
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", kerrors.ErrInvalidPath, path)
		}
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidPath, path)
	}

	return f, info.Size(), nil
}

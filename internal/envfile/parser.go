package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// maxLineSize bounds a single KEY=VALUE line.
const maxLineSize = 1024 * 1024

// Parse reads KEY=VALUE lines. Each line holding an '=' is split at the first
// '=' into a trimmed key and a trimmed value; other lines are skipped. There is
// no quoting, escaping or multi-line support. A repeated key keeps its last value.
// A line longer than 1 MiB fails with ErrInvalidSource.
func Parse(r io.Reader) (Mapping, error) {
	m := Mapping{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line longer than %d bytes", kerrors.ErrInvalidSource, maxLineSize)
		}
		return nil, fmt.Errorf("failed to read env lines: %w", err)
	}

	return m, nil
}

// ParseFile opens path and parses it. A missing path, or one that is not a
// regular file, fails with ErrInvalidPath.
func ParseFile(path string) (Mapping, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidPath, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidPath, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

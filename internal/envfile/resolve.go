package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// ResolveSources expands user-supplied paths, directories and doublestar globs
// into the env files to seal. Relative patterns are resolved against baseDir.
// Files already carrying sealedSuffix and leftover atomic-write temp files are
// never returned. Directories only yield files accepted by IsSourceFile.
//
// A literal path that does not exist fails with ErrInvalidPath. Globs and
// directories that match nothing fail with ErrNoFilesFound.
func ResolveSources(patterns []string, baseDir, sealedSuffix string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, sealedSuffix)
		if err != nil {
			return nil, err
		}
		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}
	return files, nil
}

func resolvePattern(pattern, baseDir, sealedSuffix string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findSourcesInDir(absPattern, sealedSuffix)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, sealedSuffix)
	}

	// Literal paths are passed through as given so that the seal reports a
	// precise error for each one.
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidPath, pattern)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
	}
	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern, sealedSuffix string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if strings.HasSuffix(m, sealedSuffix) || isTempFile(filepath.Base(m)) {
			continue
		}
		filtered = append(filtered, m)
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, pattern)
	}
	return filtered, nil
}

// findSourcesInDir walks dir for env files, skipping hidden directories.
func findSourcesInDir(dir, sealedSuffix string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsSourceFile(path, sealedSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed while walking %s: %w", dir, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no env files in %s", kerrors.ErrNoFilesFound, dir)
	}
	return files, nil
}

// IsSourceFile reports whether path names a plaintext env file: ".env" itself
// or ".env.<variant>", excluding sealed artifacts and atomic-write temp files.
// Names like ".envrc" or "notes.environment.md" are not env files.
func IsSourceFile(path, sealedSuffix string) bool {
	base := filepath.Base(path)
	if base != ".env" && !strings.HasPrefix(base, ".env.") {
		return false
	}
	return !strings.HasSuffix(base, sealedSuffix) && !isTempFile(base)
}

// isTempFile matches the names utils.WriteFileAtomic gives its temp files.
func isTempFile(base string) bool {
	return strings.Contains(base, ".tmp-")
}

// SealedPath returns the artifact path for a source file.
func SealedPath(source, sealedSuffix string) string {
	return source + sealedSuffix
}

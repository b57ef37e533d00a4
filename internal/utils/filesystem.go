package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindUpwards walks from the working directory towards the filesystem root
// looking for a file called name. It stops one level above the user's home
// directory. Returns the full path, or "" when nothing was found.
func FindUpwards(name string) (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	stopAt := filepath.Dir(homeDir)

	for {
		if currentDir == stopAt {
			return "", nil
		}

		candidate := filepath.Join(currentDir, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.Mode().IsRegular() {
				return candidate, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for %s at %s: %w", name, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// DestroyFile truncates path to zero length and removes it.
// This does not defeat forensic recovery: journaling filesystems, SSD wear
// levelling and backups can all retain the old contents.
func DestroyFile(path string) error {
	var errs []error
	if err := os.Truncate(path, 0); err != nil {
		errs = append(errs, fmt.Errorf("failed to truncate %s: %w", path, err))
	}
	if err := os.Remove(path); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
	}
	return errors.Join(errs...)
}

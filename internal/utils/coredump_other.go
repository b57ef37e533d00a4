//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package utils

// DisableCoreDumps is a no-op on this platform.
func DisableCoreDumps() error {
	return nil
}

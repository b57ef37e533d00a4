//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package utils

import "golang.org/x/sys/unix"

// DisableCoreDumps sets RLIMIT_CORE to zero for this process and its children,
// so a crash cannot write decrypted values to a core file.
func DisableCoreDumps() error {
	return unix.Setrlimit(unix.RLIMIT_CORE, &unix.Rlimit{Cur: 0, Max: 0})
}

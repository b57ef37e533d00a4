// Package utils provides shared helpers for envseal.
//
// # Filesystem Utilities
//
//   - FindUpwards: walks up from the working directory to find a file
//   - WriteFileAtomic: temp file plus rename, so artifacts are never half written
//   - DestroyFile: truncate then remove a plaintext source (best effort)
//
// # System Utilities
//
//   - GetUsername, GetHostname: identity recorded in the audit log
//
// # String Utilities
//
//   - FormatPaths: indented, colored path lists for final messages
//
// # Terminal Utilities
//
//   - ReadPassphrase: hidden passphrase prompt on stdin
//   - ReadPassphraseFromTTY: hidden prompt on /dev/tty when stdin is piped
//   - IsTerminal, IsTTYAvailable: terminal detection
package utils

// Package configs loads envseal's TOML configuration.
//
// Settings are layered, later layers winning key by key:
//
//   - Built-in defaults (pbkdf2, ".compiled" suffix)
//   - User config: <UserConfigDir>/envseal/config.toml
//   - Project config: the nearest .envseal.toml above the working directory
//
// A complete file looks like:
//
//	[kdf]
//	mode = "pbkdf2"
//
//	[output]
//	suffix = ".compiled"
//
//	[seal]
//	keep_source = false
//
//	[audit]
//	enabled = true
//	path = "/var/log/envseal/audit.jsonl"
//
// Unknown keys, unknown KDF modes and suffixes containing a path separator are
// rejected with ErrInvalidConfig. The pbkdf2 iteration count is fixed at
// 300,000, so there is no iterations key.
//
// The KDF mode is not recorded in sealed artifacts. Opening an artifact must
// use the mode it was sealed with, so changing [kdf] mode affects which
// existing artifacts can be opened without an explicit --kdf flag.
package configs

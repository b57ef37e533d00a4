// Package audit records seal, open and run operations.
//
// # Log Format
//
// The log is JSON Lines, one object per operation, stored by default at
// $XDG_DATA_HOME/envseal/audit.jsonl (override with [audit] path):
//
//	{"ts":"2026-01-02T03:04:05.000000Z","id":"…","user":"alice","op":"seal",
//	 "file":".env","artifact":".env.compiled","outcome":"success","kdf":"pbkdf2"}
//
// Entries never contain passphrases, key material or mapping values.
//
// # Failure Handling
//
// Logging is best-effort. Record returns an error so the caller can print a
// warning, but the operation itself has already succeeded or failed by then
// and its result stands.
//
// # Reading Logs
//
// ReadEntries parses the whole log, skipping malformed lines. Filter narrows
// by operation and keeps the most recent entries.
package audit

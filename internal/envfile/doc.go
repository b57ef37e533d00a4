// Package envfile reads plaintext env files and converts variable sets to and
// from their canonical sealed form.
//
// # Source Format
//
// One variable per line, split at the first '=':
//
//	API_KEY = abc123   -> "API_KEY": "abc123"
//	URL=http://x/?a=b  -> "URL": "http://x/?a=b"
//	just a comment     -> skipped (no '=')
//
// Keys and values are trimmed. There is no quoting, escaping or multi-line
// support.
//
// # Canonical Form
//
// Encode produces a compact JSON object with sorted keys, so sealing the same
// variables with the same nonce always yields the same artifact. An empty
// mapping encodes to zero bytes.
//
// # File Resolution
//
// ResolveSources accepts literal paths, directories and doublestar globs
// ("services/**/.env*") and never returns already sealed artifacts.
package envfile

// Package workflows implements envseal's operations independent of the CLI.
//
// The cmd/ package parses flags, resolves the passphrase and formats output.
// Workflows do the rest: reading files, deriving keys, encrypting,
// writing artifacts and recording audit entries.
//
// # Available Workflows
//
//   - Seal: encrypts one env file into <file>.compiled
//   - Retrieve: opens an artifact and returns its mapping
//   - Run: retrieves a mapping and runs a command with it in the environment
//   - Inspect: parses an artifact and checks its digest without a passphrase
//   - Log: reads the audit log
//
// # Open Order
//
// Retrieve checks in a fixed order, each step failing with its own error:
//
//  1. the artifact exists and is a regular file (ErrInvalidPath)
//  2. its length covers the header and declared ciphertext (ErrCorruptEnvelope)
//  3. the integrity digest matches (ErrIntegrityMismatch)
//  4. the key derives (ErrInvalidKeyLength, blake2s mode only)
//  5. AEAD authentication passes (ErrDecryptionFailed)
//  6. the plaintext decodes to a mapping (ErrMalformedPlaintext)
//
// Nothing is decrypted, and no key is derived, for an artifact that fails 1-3.
//
// # Error Handling
//
// Errors wrap sentinels from internal/errors; use errors.Is:
//
//	result, err := workflows.Retrieve(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // wrong passphrase or KDF mode
//	}
//
// # Context Usage
//
// Every workflow takes a context.Context. Seal and Retrieve check it just
// before key derivation, the only expensive step.
package workflows

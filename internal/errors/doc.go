// Package errors provides typed error values for envseal.
//
// Sentinel errors let callers branch on failure kinds with errors.Is()
// instead of matching strings.
//
// # Error Categories
//
//   - Path errors: the source or artifact is missing (ErrInvalidPath)
//   - Envelope errors: structural or digest failures (ErrCorruptEnvelope,
//     ErrIntegrityMismatch)
//   - Crypto errors: cipher and key derivation failures (ErrEncryptionFailed,
//     ErrDecryptionFailed, ErrMalformedPlaintext)
//   - User errors: passphrase and configuration problems
//
// Structural checks always run before cryptographic ones, so a file that
// fails with ErrCorruptEnvelope never reached key-dependent code.
//
// ErrIntegrityMismatch and ErrDecryptionFailed stay distinct inside the
// workflows and the audit log. The CLI reports both as ErrCannotOpen so the
// message does not reveal which check rejected the file.
//
// # Usage
//
//	result, err := workflows.Retrieve(ctx, opts)
//	if errors.Is(err, kerrors.ErrIntegrityMismatch) {
//	    // digest check failed, nothing was decrypted
//	}
//
// Wrap errors with context:
//
//	return fmt.Errorf("reading %s: %w", path, kerrors.ErrInvalidPath)
package errors

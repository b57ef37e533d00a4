// Package secrets provides the key handling and cipher primitives for envseal.
//
// # Key Derivation
//
// A passphrase becomes a 32-byte KeyMaterial through one of two modes:
//
//   - pbkdf2 (default): PBKDF2-HMAC-SHA256, exactly 300,000 iterations,
//     salted with the artifact's 12-byte nonce. Each artifact gets its own key.
//   - blake2s (legacy): BLAKE2s-256 of the passphrase keyed by itself. No salt
//     and no work factor. Kept for artifacts sealed by older tooling.
//
// The envelope does not record which mode sealed it, so the same mode must be
// configured for sealing and opening.
//
// # Key Material
//
// KeyMaterial is a fixed array that is mlock'ed where the platform allows it
// and zeroed by Destroy:
//
//	key, err := secrets.Derive(passphrase, nonce, params)
//	if err != nil {
//	    return err
//	}
//	defer key.Destroy()
//
// # Cipher
//
// Cipher is the AEAD boundary. ChaCha20Poly1305 returns ciphertext and the
// 16-byte tag separately so the envelope can frame them; failures are
// ErrEncryptionFailed or ErrDecryptionFailed and never carry partial output.
package secrets

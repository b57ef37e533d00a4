// Package envelope encodes and decodes the sealed artifact format and guards
// its integrity.
//
// # Layout
//
//	offset  size        field
//	0       4           cipher_len (big-endian uint32)
//	4       32          integrity digest, BLAKE2s-256(nonce‖tag‖ciphertext)
//	36      12          nonce
//	48      16          AEAD tag
//	64      cipher_len  ciphertext
//
// A well-formed artifact is exactly 64 + cipher_len bytes.
//
// # Validation Order
//
// Parse checks lengths and nothing else. Callers then check the digest with
// Envelope.Verify and only decrypt when it passes. A structurally broken file
// never reaches key-dependent code, and a file whose digest is wrong is never
// decrypted.
package envelope

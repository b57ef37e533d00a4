package envelope

import (
	"crypto/subtle"

	"golang.org/x/crypto/blake2s"
)

// Digest returns the keyless BLAKE2s-256 hash of nonce‖tag‖ciphertext.
//
// The digest is not a MAC. Anyone can recompute it, so it only catches
// corruption and naive edits to the framing. Authenticating the plaintext is
// the AEAD tag's job, and a valid digest says nothing about whether
// decryption will succeed.
func Digest(nonce, tag, ciphertext []byte) [DigestSize]byte {
	h, _ := blake2s.New256(nil)
	h.Write(nonce)
	h.Write(tag)
	h.Write(ciphertext)

	var sum [DigestSize]byte
	h.Sum(sum[:0])
	return sum
}

// VerifyDigest recomputes the digest and compares it with expected in constant time.
func VerifyDigest(expected, nonce, tag, ciphertext []byte) bool {
	actual := Digest(nonce, tag, ciphertext)
	return subtle.ConstantTimeCompare(expected, actual[:]) == 1
}

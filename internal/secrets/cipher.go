package secrets

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the per-artifact nonce length in bytes.
	NonceSize = chacha20poly1305.NonceSize

	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = chacha20poly1305.Overhead

	// MaxPlaintextSize is the largest plaintext the envelope's 32-bit length field can describe.
	MaxPlaintextSize = math.MaxUint32
)

// Cipher is the AEAD boundary used by the seal and open workflows.
// Ciphertext is always the same length as the plaintext; the tag is returned
// separately so the envelope can store it in its own field.
// Failures carry no partial output.
type Cipher interface {
	Encrypt(plaintext, key, nonce []byte) (ciphertext, tag []byte, err error)
	Decrypt(ciphertext, tag, key, nonce []byte) ([]byte, error)
}

// ChaCha20Poly1305 implements Cipher with the IETF ChaCha20-Poly1305 construction
// and no associated data.
type ChaCha20Poly1305 struct{}

var _ Cipher = ChaCha20Poly1305{}

// Encrypt seals plaintext. It fails with ErrEncryptionFailed when the key or nonce
// has the wrong size or the plaintext is larger than MaxPlaintextSize.
func (ChaCha20Poly1305) Encrypt(plaintext, key, nonce []byte) ([]byte, []byte, error) {
	if uint64(len(plaintext)) > MaxPlaintextSize {
		return nil, nil, fmt.Errorf("%w: plaintext is %d bytes, limit is %d", kerrors.ErrEncryptionFailed, len(plaintext), uint64(MaxPlaintextSize))
	}
	if len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrEncryptionFailed, NonceSize, len(nonce))
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize
	return sealed[:split:split], sealed[split:], nil
}

// Decrypt opens ciphertext. Any failure, including a wrong key or a modified
// tag, is reported as ErrDecryptionFailed.
func (ChaCha20Poly1305) Decrypt(ciphertext, tag, key, nonce []byte) ([]byte, error) {
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, fmt.Errorf("%w: bad nonce or tag size", kerrors.ErrDecryptionFailed)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecryptionFailed, err)
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, kerrors.ErrDecryptionFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// NewNonce reads NonceSize bytes from r, or from crypto/rand when r is nil.
func NewNonce(r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

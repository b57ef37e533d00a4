package secrets

import (
	"crypto/sha256"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/pbkdf2"
)

// KDFMode selects how a passphrase becomes key material.
type KDFMode string

const (
	// ModePBKDF2 runs PBKDF2-HMAC-SHA256 salted with the artifact nonce.
	ModePBKDF2 KDFMode = "pbkdf2"

	// ModeBlake2s hashes the passphrase with BLAKE2s-256 keyed by the passphrase itself.
	// Legacy mode: there is no salt and no work factor, so it offers no
	// resistance to offline guessing. Do not use it for new artifacts.
	ModeBlake2s KDFMode = "blake2s"
)

// PBKDF2Iterations is the iteration count for ModePBKDF2. Artifacts do not
// record it, so it is fixed for sealing and opening alike.
const PBKDF2Iterations = 300_000

// KDFModes lists the supported modes, default first.
var KDFModes = []KDFMode{ModePBKDF2, ModeBlake2s}

// KDFParams configures Derive.
type KDFParams struct {
	Mode KDFMode
}

// DefaultKDFParams returns the parameters used for new artifacts.
func DefaultKDFParams() KDFParams {
	return KDFParams{Mode: ModePBKDF2}
}

// ParseKDFMode converts a user-supplied mode name. Matching is case-insensitive.
func ParseKDFMode(s string) (KDFMode, error) {
	mode := KDFMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range KDFModes {
		if mode == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownKDFMode, s)
}

// Validate checks that the mode is supported.
func (p KDFParams) Validate() error {
	switch p.Mode {
	case ModePBKDF2, ModeBlake2s:
		return nil
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnknownKDFMode, p.Mode)
	}
}

// Derive turns a passphrase into KeyMaterial. For ModePBKDF2 the salt is the
// artifact nonce; ModeBlake2s ignores it.
//
// Derive is not an authentication check. It fails only when the mode is
// unknown or the primitive rejects an input size (BLAKE2s keys are limited to
// 32 bytes, so longer passphrases cannot use ModeBlake2s).
func Derive(passphrase, salt []byte, params KDFParams) (*KeyMaterial, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch params.Mode {
	case ModePBKDF2:
		derived := pbkdf2.Key(passphrase, salt, PBKDF2Iterations, KeySize, sha256.New)
		defer Zero(derived)
		return NewKeyMaterial(derived)

	default:
		h, err := blake2s.New256(passphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: passphrase is %d bytes, blake2s mode accepts at most %d", kerrors.ErrInvalidKeyLength, len(passphrase), blake2s.Size)
		}
		h.Write(passphrase)
		derived := h.Sum(nil)
		defer Zero(derived)
		return NewKeyMaterial(derived)
	}
}

package secrets

import (
	"fmt"
	"runtime"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// KeySize is the symmetric key length in bytes.
const KeySize = 32

// KeyMaterial holds a derived key for the lifetime of one seal or open call.
// The backing array is locked into RAM where the platform allows it and is
// overwritten by Destroy. Callers defer Destroy right after derivation.
type KeyMaterial struct {
	key       [KeySize]byte
	locked    bool
	destroyed bool
}

// NewKeyMaterial copies b into a new KeyMaterial. b must be exactly KeySize bytes;
// the caller still owns b and should zero it.
func NewKeyMaterial(b []byte) (*KeyMaterial, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKeyLength, KeySize, len(b))
	}

	k := &KeyMaterial{}
	// mlock can fail under a low RLIMIT_MEMLOCK; the key is still usable.
	k.locked = lockMemory(k.key[:]) == nil
	copy(k.key[:], b)
	return k, nil
}

// Bytes returns the key. The slice aliases the KeyMaterial and is zeroed by Destroy.
func (k *KeyMaterial) Bytes() []byte {
	return k.key[:]
}

// Destroyed reports whether Destroy has run.
func (k *KeyMaterial) Destroyed() bool {
	return k.destroyed
}

// Destroy zeroes the key and releases the memory lock. Safe to call more than once.
func (k *KeyMaterial) Destroy() {
	if k == nil || k.destroyed {
		return
	}
	Zero(k.key[:])
	if k.locked {
		_ = unlockMemory(k.key[:])
		k.locked = false
	}
	k.destroyed = true
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

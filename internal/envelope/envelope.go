package envelope

import (
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
)

// Field sizes and offsets of the on-disk layout:
//
//	[cipher_len 4][digest 32][nonce 12][tag 16][ciphertext cipher_len]
const (
	LengthSize = 4
	DigestSize = 32
	NonceSize  = secrets.NonceSize
	TagSize    = secrets.TagSize

	digestOffset     = LengthSize
	nonceOffset      = digestOffset + DigestSize
	tagOffset        = nonceOffset + NonceSize
	ciphertextOffset = tagOffset + TagSize

	// HeaderSize is the fixed part of every artifact.
	HeaderSize = ciphertextOffset
)

// Envelope is a parsed artifact. Slices returned by Parse alias the input buffer.
type Envelope struct {
	CipherLen  uint32
	Digest     []byte
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte

	// Trailing counts bytes after the ciphertext. Parse tolerates them.
	Trailing int
}

// Size returns the artifact length the envelope occupies, HeaderSize + CipherLen.
func (e *Envelope) Size() int {
	return HeaderSize + int(e.CipherLen)
}

// Assemble concatenates the fields in layout order. cipher_len is taken from
// len(ciphertext), so the header always agrees with the payload.
func Assemble(digest, nonce, tag, ciphertext []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(ciphertext))
	binary.BigEndian.PutUint32(out[:digestOffset], uint32(len(ciphertext)))
	copy(out[digestOffset:nonceOffset], digest)
	copy(out[nonceOffset:tagOffset], nonce)
	copy(out[tagOffset:ciphertextOffset], tag)
	return append(out, ciphertext...)
}

// Parse splits an artifact into its fields. Lengths are validated before any
// field is looked at: an input shorter than HeaderSize, or shorter than
// HeaderSize plus the declared cipher_len, fails with ErrCorruptEnvelope.
func Parse(data []byte) (*Envelope, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", kerrors.ErrCorruptEnvelope, len(data), HeaderSize)
	}

	cipherLen := binary.BigEndian.Uint32(data[:digestOffset])
	total := uint64(HeaderSize) + uint64(cipherLen)
	if uint64(len(data)) < total {
		return nil, fmt.Errorf("%w: truncated ciphertext, have %d bytes, need %d", kerrors.ErrCorruptEnvelope, len(data), total)
	}

	end := int(total)
	return &Envelope{
		CipherLen:  cipherLen,
		Digest:     data[digestOffset:nonceOffset:nonceOffset],
		Nonce:      data[nonceOffset:tagOffset:tagOffset],
		Tag:        data[tagOffset:ciphertextOffset:ciphertextOffset],
		Ciphertext: data[ciphertextOffset:end:end],
		Trailing:   len(data) - end,
	}, nil
}

// Seal builds the artifact bytes for an already encrypted payload, computing
// the integrity digest over nonce, tag and ciphertext.
func Seal(nonce, tag, ciphertext []byte) []byte {
	digest := Digest(nonce, tag, ciphertext)
	return Assemble(digest[:], nonce, tag, ciphertext)
}

// Verify checks the envelope's stored digest. See VerifyDigest.
func (e *Envelope) Verify() bool {
	return VerifyDigest(e.Digest, e.Nonce, e.Tag, e.Ciphertext)
}

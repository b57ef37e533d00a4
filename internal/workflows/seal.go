package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/envelope"
	"github.com/PolarWolf314/envseal/internal/envfile"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/utils"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Source is the plaintext env file to seal.
	Source string

	// Passphrase is used to derive the sealing key. It must not be empty.
	Passphrase []byte

	// KDF selects the key derivation. The zero value means pbkdf2.
	KDF secrets.KDFParams

	// Suffix is appended to Source to name the artifact. Defaults to ".compiled".
	Suffix string

	// KeepSource leaves the plaintext source in place after sealing.
	KeepSource bool

	// Rand supplies the nonce. Defaults to crypto/rand.
	Rand io.Reader

	// Cipher defaults to ChaCha20-Poly1305.
	Cipher secrets.Cipher

	// Audit receives one entry per call when non-nil.
	Audit *audit.Log
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	// Source is the plaintext file that was sealed.
	Source string

	// SealedPath is the artifact that was written.
	SealedPath string

	// Keys is the number of variables sealed.
	Keys int

	// CipherLen is the ciphertext length stored in the artifact header.
	CipherLen int

	// Size is the total artifact length, always envelope.HeaderSize + CipherLen.
	Size int

	// Nonce is the nonce generated for this artifact.
	Nonce []byte

	// KDF is the derivation mode the artifact must be opened with.
	KDF secrets.KDFMode

	// SourceRemoved reports whether the plaintext source was deleted.
	SourceRemoved bool

	// CleanupErr is set when removing the source failed. The artifact is
	// still valid; the plaintext is still on disk.
	CleanupErr error

	// AuditErr is set when the audit entry could not be written.
	AuditErr error
}

// Seal encrypts an env file into an artifact next to it.
//
// The source is parsed into a mapping and serialized canonically, then
// encrypted under a key derived from the passphrase and a fresh nonce. The
// artifact is written atomically with mode 0600. Unless KeepSource is set, the
// source is then truncated and removed; failing to do so does not fail the seal.
//
// Returns ErrEmptyPassphrase if no passphrase was given.
// Returns ErrInvalidPath if the source does not exist or is not a regular file.
// Returns ErrUnknownKDFMode for an unsupported KDF mode.
// Returns ErrInvalidKeyLength if the passphrase is too long for the blake2s mode.
// Returns ErrEncryptionFailed if the cipher rejects the plaintext.
func Seal(ctx context.Context, opts SealOptions) (result *SealResult, err error) {
	params, paramsErr := kdfParams(opts.KDF)
	suffix := opts.Suffix
	if suffix == "" {
		suffix = configs.DefaultSuffix
	}
	sealedPath := envfile.SealedPath(opts.Source, suffix)

	defer func() {
		artifact := sealedPath
		if err != nil {
			artifact = ""
		}
		auditErr := record(opts.Audit, audit.OpSeal, opts.Source, artifact, params.Mode, err)
		if result != nil {
			result.AuditErr = auditErr
		}
	}()

	if len(opts.Passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}
	if paramsErr != nil {
		return nil, paramsErr
	}

	mapping, err := envfile.ParseFile(opts.Source)
	if err != nil {
		return nil, err
	}

	plaintext, err := envfile.Encode(mapping)
	if err != nil {
		return nil, err
	}
	defer secrets.Zero(plaintext)

	nonce, err := secrets.NewNonce(opts.Rand)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := secrets.Derive(opts.Passphrase, nonce, params)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	ciphertext, tag, err := cipherOrDefault(opts.Cipher).Encrypt(plaintext, key.Bytes(), nonce)
	if err != nil {
		return nil, err
	}

	artifact := envelope.Seal(nonce, tag, ciphertext)
	if err := utils.WriteFileAtomic(sealedPath, artifact, 0600); err != nil {
		return nil, fmt.Errorf("writing sealed file: %w", err)
	}

	result = &SealResult{
		Source:     opts.Source,
		SealedPath: sealedPath,
		Keys:       len(mapping),
		CipherLen:  len(ciphertext),
		Size:       len(artifact),
		Nonce:      nonce,
		KDF:        params.Mode,
	}

	if !opts.KeepSource {
		if err := utils.DestroyFile(opts.Source); err != nil {
			result.CleanupErr = err
		} else {
			result.SourceRemoved = true
		}
	}

	return result, nil
}

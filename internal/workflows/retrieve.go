package workflows

import (
	"context"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/envelope"
	"github.com/PolarWolf314/envseal/internal/envfile"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
)

// RetrieveOptions configures the retrieve workflow.
type RetrieveOptions struct {
	// Path is the sealed artifact.
	Path string

	// Passphrase must match the one used to seal.
	Passphrase []byte

	// KDF must match the mode used to seal. The artifact does not record it.
	// The zero value means pbkdf2.
	KDF secrets.KDFParams

	// Cipher defaults to ChaCha20-Poly1305.
	Cipher secrets.Cipher

	// Audit receives one entry per call when non-nil.
	Audit *audit.Log

	// Operation names the entry in the audit log. Defaults to "open".
	Operation string
}

// RetrieveResult contains the outcome of a retrieve operation.
type RetrieveResult struct {
	// Path is the artifact that was opened.
	Path string

	// Mapping holds the recovered variables.
	Mapping envfile.Mapping

	// CipherLen is the ciphertext length from the artifact header.
	CipherLen int

	// KDF is the derivation mode that opened the artifact.
	KDF secrets.KDFMode

	// AuditErr is set when the audit entry could not be written.
	AuditErr error
}

// Retrieve opens an artifact and returns the mapping it holds.
//
// The artifact is read through a read-only view that is released before
// Retrieve returns. Its structure and integrity digest are checked before the
// key is derived, so a damaged or edited artifact never costs a KDF run.
//
// Returns ErrEmptyPassphrase if no passphrase was given.
// Returns ErrInvalidPath if the artifact does not exist or is not a regular file.
// Returns ErrCorruptEnvelope if the artifact is shorter than its header or declared length.
// Returns ErrIntegrityMismatch if the digest does not match; no decryption is attempted.
// Returns ErrDecryptionFailed if authentication fails, usually a wrong passphrase.
// Returns ErrMalformedPlaintext if the decrypted bytes are not a serialized mapping.
func Retrieve(ctx context.Context, opts RetrieveOptions) (result *RetrieveResult, err error) {
	params, paramsErr := kdfParams(opts.KDF)
	op := opts.Operation
	if op == "" {
		op = audit.OpOpen
	}

	defer func() {
		auditErr := record(opts.Audit, op, opts.Path, "", params.Mode, err)
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

	view, err := openView(opts.Path)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	env, err := envelope.Parse(view.Bytes())
	if err != nil {
		return nil, err
	}

	if !env.Verify() {
		return nil, kerrors.ErrIntegrityMismatch
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := secrets.Derive(opts.Passphrase, env.Nonce, params)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	plaintext, err := cipherOrDefault(opts.Cipher).Decrypt(env.Ciphertext, env.Tag, key.Bytes(), env.Nonce)
	if err != nil {
		return nil, err
	}
	defer secrets.Zero(plaintext)

	mapping, err := envfile.Decode(plaintext)
	if err != nil {
		return nil, err
	}

	return &RetrieveResult{
		Path:      opts.Path,
		Mapping:   mapping,
		CipherLen: int(env.CipherLen),
		KDF:       params.Mode,
	}, nil
}

package workflows

import (
	"errors"

	"github.com/PolarWolf314/envseal/internal/audit"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/secrets"
)

// errorCodes gives failures a stable name in the audit log. Integrity and
// authentication failures stay distinct here even though the CLI shows them
// with one message.
var errorCodes = []struct {
	err  error
	code string
}{
	{kerrors.ErrInvalidPath, "invalid_path"},
	{kerrors.ErrCorruptEnvelope, "corrupt_envelope"},
	{kerrors.ErrIntegrityMismatch, "integrity_mismatch"},
	{kerrors.ErrDecryptionFailed, "decryption_failed"},
	{kerrors.ErrEncryptionFailed, "encryption_failed"},
	{kerrors.ErrMalformedPlaintext, "malformed_plaintext"},
	{kerrors.ErrInvalidKeyLength, "invalid_key_length"},
	{kerrors.ErrUnknownKDFMode, "unknown_kdf_mode"},
	{kerrors.ErrEmptyPassphrase, "empty_passphrase"},
	{kerrors.ErrInvalidSource, "invalid_source"},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "error"
}

// record writes one audit entry for an operation. A nil log records nothing.
func record(log *audit.Log, op, file, artifact string, mode secrets.KDFMode, opErr error) error {
	if log == nil {
		return nil
	}

	entry := audit.NewEntry(op)
	entry.File = file
	entry.Artifact = artifact
	entry.KDF = string(mode)
	entry.Outcome = audit.OutcomeSuccess
	if opErr != nil {
		entry.Outcome = audit.OutcomeFailure
		entry.Error = errorCode(opErr)
	}
	return log.Record(entry)
}

// kdfParams defaults an empty mode to pbkdf2 and validates the result.
func kdfParams(p secrets.KDFParams) (secrets.KDFParams, error) {
	if p.Mode == "" {
		p.Mode = secrets.ModePBKDF2
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func cipherOrDefault(c secrets.Cipher) secrets.Cipher {
	if c == nil {
		return secrets.ChaCha20Poly1305{}
	}
	return c
}

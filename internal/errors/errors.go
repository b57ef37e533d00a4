package errors

import "errors"

// Path errors indicate the source or artifact could not be used.
var (
	// ErrInvalidPath indicates the source file or sealed artifact does not exist or is not a regular file.
	ErrInvalidPath = errors.New("not a valid path")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrOutputExists indicates an output file already exists and overwriting was not requested.
	ErrOutputExists = errors.New("output file already exists")
)

// Envelope errors indicate the artifact failed structural or integrity validation.
var (
	// ErrCorruptEnvelope indicates the artifact is shorter than its header or declared ciphertext length.
	ErrCorruptEnvelope = errors.New("corrupt envelope")

	// ErrIntegrityMismatch indicates the stored digest does not match the nonce, tag and ciphertext.
	ErrIntegrityMismatch = errors.New("integrity digest mismatch")
)

// Cryptographic errors indicate failures inside the cipher or key derivation.
var (
	// ErrEncryptionFailed indicates the cipher rejected the plaintext.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates AEAD authentication failed (wrong key or corrupted tag).
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMalformedPlaintext indicates the decrypted bytes are not a valid serialized mapping.
	ErrMalformedPlaintext = errors.New("malformed plaintext")

	// ErrInvalidKeyLength indicates a key, nonce or passphrase has a size the primitive rejects.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrUnknownKDFMode indicates the requested key derivation mode is not supported.
	ErrUnknownKDFMode = errors.New("unknown key derivation mode")
)

// Input errors indicate a source file cannot be sealed as a variable set.
var (
	// ErrInvalidSource indicates the source holds bytes that are not valid UTF-8
	// or a line longer than the parser accepts.
	ErrInvalidSource = errors.New("source is not a valid env file")
)

// User-facing errors.
var (
	// ErrEmptyPassphrase indicates no passphrase was supplied.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// ErrPassphraseMismatch indicates the confirmation prompt did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")

	// ErrCannotOpen is the single message shown to users when an artifact fails
	// either the integrity check or AEAD authentication.
	ErrCannotOpen = errors.New("cannot open sealed file (wrong passphrase or tampered file)")

	// ErrInvalidConfig indicates the configuration file holds an unusable value.
	ErrInvalidConfig = errors.New("configuration is invalid")
)


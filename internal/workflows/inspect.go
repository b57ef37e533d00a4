package workflows

import (
	"bytes"
	"context"

	"github.com/PolarWolf314/envseal/internal/envelope"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Path is the sealed artifact.
	Path string
}

// InspectResult describes an artifact's structure.
type InspectResult struct {
	Path      string
	Size      int
	CipherLen int
	Digest    []byte
	Nonce     []byte
	Tag       []byte

	// Trailing counts bytes after the declared ciphertext, ignored when opening.
	Trailing int

	// IntegrityOK reports whether the stored digest matches.
	IntegrityOK bool
}

// Inspect parses an artifact and checks its digest without a passphrase.
// A digest mismatch is reported in the result, not as an error.
//
// Returns ErrInvalidPath if the artifact does not exist or is not a regular file.
// Returns ErrCorruptEnvelope if the artifact is shorter than its header or declared length.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	view, err := openView(opts.Path)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	data := view.Bytes()
	env, err := envelope.Parse(data)
	if err != nil {
		return nil, err
	}

	// Copy out of the view before it is released.
	return &InspectResult{
		Path:        opts.Path,
		Size:        len(data),
		CipherLen:   int(env.CipherLen),
		Digest:      bytes.Clone(env.Digest),
		Nonce:       bytes.Clone(env.Nonce),
		Tag:         bytes.Clone(env.Tag),
		Trailing:    env.Trailing,
		IntegrityOK: env.Verify(),
	}, nil
}

package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

func TestOpenView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact")
	require.NoError(t, os.WriteFile(path, []byte("sealed bytes"), 0600))

	view, err := openView(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed bytes"), view.Bytes())

	require.NoError(t, view.Close())
	assert.Nil(t, view.Bytes())
	assert.NoError(t, view.Close(), "second Close is a no-op")
}

func TestOpenViewEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	view, err := openView(path)
	require.NoError(t, err)
	assert.Empty(t, view.Bytes())
	assert.NoError(t, view.Close())
}

func TestOpenViewInvalidPath(t *testing.T) {
	dir := t.TempDir()

	_, err := openView(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidPath)

	_, err = openView(dir)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPath)
}

package workflows

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/envseal/internal/secrets"
)

// fastKDF keeps tests that seal many artifacts quick. PBKDF2 is covered by
// the tests that name it explicitly.
var fastKDF = secrets.KDFParams{Mode: secrets.ModeBlake2s}

func writeEnvFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// fixedRand yields the same nonce on every read.
func fixedRand(b byte) *bytes.Reader {
	return bytes.NewReader(bytes.Repeat([]byte{b}, secrets.NonceSize))
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

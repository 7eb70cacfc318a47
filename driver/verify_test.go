package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyBinaryAcceptsMatchingDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine")
	content := []byte("pretend-binary-contents")
	require.NoError(t, os.WriteFile(path, content, 0o755))

	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])

	require.NoError(t, VerifyBinary(path, digest))
}

func TestVerifyBinaryRejectsMismatchedDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine")
	require.NoError(t, os.WriteFile(path, []byte("pretend-binary-contents"), 0o755))

	err := VerifyBinary(path, hex.EncodeToString(make([]byte, 32)))
	require.ErrorIs(t, err, ErrHashMismatch)
}

func TestVerifyBinaryMissingFile(t *testing.T) {
	err := VerifyBinary(filepath.Join(t.TempDir(), "missing"), "deadbeef")
	require.Error(t, err)
}

package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// VerifyBinary checks that the file at path hashes to expectedHexDigest
// (lowercase hex SHA-256), the way the node pins a specific consensus
// engine release rather than trusting whatever binary happens to be on
// PATH.
func VerifyBinary(path string, expectedHexDigest string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	got := hex.EncodeToString(h.Sum(nil))
	if got != expectedHexDigest {
		return ErrHashMismatch
	}
	return nil
}

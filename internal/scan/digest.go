package scan

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"os"
)

// FileDigest reads the file at path fully into memory and returns its
// SHA-512 digest as a 128-character lowercase hex string. Digests are
// recomputed on every scan; nothing is cached between runs.
func FileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file for digest: %w", err)
	}
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

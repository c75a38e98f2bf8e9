package testutil

import (
	"crypto/sha512"
	"encoding/hex"
)

// SHA512Hex returns the SHA-512 digest of data as a lowercase hex string.
// Matches the digest format stored on model file rows.
func SHA512Hex(data []byte) string {
	h := sha512.Sum512(data)
	return hex.EncodeToString(h[:])
}

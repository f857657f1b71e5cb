package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPin digests a PIN for storage and comparison. The lowercase hex
// SHA-256 format matches the digests already present on legacy profile
// rows, so it must not change. This is not an authorization token.
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateUniqueID returns a random 16-byte identifier encoded as a
// 32-character hex string, used as the public path segment of a
// dynamic QR code's scan URL.
func GenerateUniqueID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the number of random bytes in a bearer token (32 hex chars).
const TokenBytes = 16

// GenerateToken returns a new random opaque token, hex encoded
func GenerateToken() (string, error) {
	tokenBytes := make([]byte, TokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(tokenBytes), nil
}

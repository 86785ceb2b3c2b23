// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const apiKeyPrefix = "gk_"

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// HashString returns the hex SHA-256 of input. API keys are stored and
// looked up by this digest.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func GenerateAPIKey() (string, error) {
	randomPart, err := GenerateRandomString(40)
	if err != nil {
		return "", err
	}
	return apiKeyPrefix + randomPart, nil
}

// LooksLikeAPIKey rejects values that cannot be an issued key before any
// store lookup.
func LooksLikeAPIKey(key string) bool {
	return len(key) == len(apiKeyPrefix)+40 && key[:len(apiKeyPrefix)] == apiKeyPrefix
}

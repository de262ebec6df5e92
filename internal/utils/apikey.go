package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/openmapcollab/mapping-api/internal/constants"
)

// GenerateAPIKey generates a random API key. The plaintext key is shown
// to the user exactly once; only a hash of it is persisted.
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, constants.APIKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/labstack/gommon/random"
)

// Stored credentials have the form salt:sha256hex(salt+plaintext). The
// separator is reserved, so the salt alphabet excludes it.
const passwordSeparator = ":"

func hashPassword(password string) string {
	salt := random.String(32, random.Alphanumeric)
	return salt + passwordSeparator + digest(salt, password)
}

func verifyPassword(stored, provided string) bool {
	salt, hashed, found := strings.Cut(stored, passwordSeparator)
	if !found {
		return false
	}
	return digest(salt, provided) == hashed
}

func digest(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

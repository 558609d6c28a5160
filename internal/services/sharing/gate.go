package sharing

import (
	"fmt"

	"github.com/pixfolio/pixfolio/internal/db/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used for user credentials
const bcryptCost = 12

// HashSharePassword hashes a share password for storage
func HashSharePassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("share password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash share password: %w", err)
	}
	return string(hash), nil
}

// VerifySharePassword checks a supplied password against the share's stored
// credential. bcrypt's comparison is constant-structure: its duration does not
// depend on how much of the password prefix matches.
//
// A share without a stored credential can never verify; when policy forces a
// password on such a share the outcome is a failed verification, not a bypass.
// The supplied password is never logged and never wrapped into an error.
func VerifySharePassword(share *models.Share, supplied string) bool {
	if share == nil || supplied == "" {
		return false
	}
	if !share.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*share.PasswordHash), []byte(supplied)) == nil
}

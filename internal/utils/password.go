package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credential storage for the auth endpoints. bcrypt embeds the salt and cost
// in the encoded hash, so users carry a single password_hash column.

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the password matches the stored hash.
// Callers collapse a false result into the same invalid-credentials error as
// an unknown email.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
// Login handlers return it verbatim in both cases so responses never
// reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword derives a bcrypt digest from a plaintext password.
// The digest embeds a random salt, so hashing the same password twice
// yields different digests.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the digest.
// A mismatch is not an error; callers decide how to respond.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

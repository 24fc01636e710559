package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is tuned above bcrypt's default; ~250ms per hash on current
// hardware.
const HashCost = 12

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// ErrHashMismatch is returned by VerifyPassword when the password does not
// match the stored digest.
var ErrHashMismatch = errors.New("password does not match")

// VerifyPassword compares a plaintext password with a stored bcrypt digest.
// A mismatch returns ErrHashMismatch; any other error means the stored
// digest is malformed, which callers should surface in logs rather than
// treat as a plain wrong password.
func VerifyPassword(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrHashMismatch
	}
	return fmt.Errorf("corrupt password digest: %w", err)
}

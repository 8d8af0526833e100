package classroom

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps verification latency predictable; deployments
// may raise it through configuration.
const DefaultBcryptCost = 10

// HashPassword will generate a password hash using the given work factor.
// A cost of 0 falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	if cost <= 0 {
		cost = DefaultBcryptCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// PasswordMatches reports whether candidate hashes to hash. Any codec
// error, including a malformed hash, reads as a mismatch: authentication
// fails closed rather than surfacing the cause.
func PasswordMatches(candidate, hash string) bool {
	return ComparePasswordAndHash(candidate, hash) == nil
}

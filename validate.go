package classroom

import (
	"strings"
	"unicode"

	goerrors "github.com/goliatone/go-errors"
)

// NormalizeEmail lower-cases and trims an email so uniqueness and lookups
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength enforces the registration precondition: at
// least 8 characters with one uppercase letter, one lowercase letter, and
// one digit. The codec itself never sees a password that fails this.
func ValidatePasswordStrength(password string) error {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit {
		return goerrors.New(
			"password must be at least 8 characters and include an uppercase letter, a lowercase letter, and a digit",
			goerrors.CategoryValidation,
		).WithTextCode("WEAK_PASSWORD").WithCode(goerrors.CodeBadRequest)
	}

	return nil
}

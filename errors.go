package classroom

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Auth failures. Missing and invalid tokens are deliberately distinct so
// the transport can tell a client that forgot the header apart from one
// holding a bad token.
var (
	ErrMissingToken = goerrors.New("missing authorization token", goerrors.CategoryAuth).
			WithTextCode("MISSING_TOKEN").
			WithCode(goerrors.CodeUnauthorized)

	ErrTokenExpired = goerrors.New("authorization token is expired", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(goerrors.CodeUnauthorized)

	ErrTokenMalformed = goerrors.New("authorization token is malformed", goerrors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrUnknownPrincipal covers both absent and deactivated accounts;
	// a soft-deleted account must not authenticate.
	ErrUnknownPrincipal = goerrors.New("account not found or deactivated", goerrors.CategoryAuth).
				WithTextCode("UNKNOWN_PRINCIPAL").
				WithCode(goerrors.CodeUnauthorized)

	// ErrInvalidCredentials collapses unknown email and wrong password so
	// callers cannot enumerate registered addresses.
	ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS").
				WithCode(goerrors.CodeUnauthorized)
)

// Authorization failures. The role-absent case is reported separately
// from the role-mismatch case for message fidelity.
var (
	ErrNoRole = goerrors.New("account has no role assigned", goerrors.CategoryAuthz).
			WithTextCode("NO_ROLE").
			WithCode(goerrors.CodeForbidden)

	ErrForbidden = goerrors.New("role does not grant access to this resource", goerrors.CategoryAuthz).
			WithTextCode("FORBIDDEN").
			WithCode(goerrors.CodeForbidden)
)

// Lifecycle failures.
var (
	ErrPasswordMismatch = goerrors.New("passwords do not match", goerrors.CategoryValidation).
				WithTextCode("PASSWORD_MISMATCH").
				WithCode(goerrors.CodeBadRequest)

	ErrMissingCredentials = goerrors.New("email and password are required", goerrors.CategoryValidation).
				WithTextCode("MISSING_CREDENTIALS").
				WithCode(goerrors.CodeBadRequest)

	ErrDuplicateEmail = goerrors.New("an account with that email already exists", goerrors.CategoryConflict).
				WithTextCode("DUPLICATE_EMAIL").
				WithCode(goerrors.CodeConflict)

	ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
				WithTextCode("ACCOUNT_NOT_FOUND").
				WithCode(goerrors.CodeNotFound)
)

// ErrMalformedBody rejects request bodies that fail to parse.
var ErrMalformedBody = goerrors.New("request body could not be parsed", goerrors.CategoryBadInput).
	WithTextCode("MALFORMED_BODY").
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString rejects hashing an empty secret.
var ErrNoEmptyString = errors.New("cannot hash an empty string")

// ErrMismatchedHashAndPassword is the codec-level mismatch sentinel.
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch")

// InternalError wraps unclassified store or codec failures.
func InternalError(err error, msg string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg).
		WithCode(goerrors.CodeInternal)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// isUniqueViolation detects the store's unique-index rejection; it is the
// safety net when two registrations race past the duplicate-email check.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

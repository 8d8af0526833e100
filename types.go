package classroom

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal logging surface the package depends on. The
// application wires a real implementation (glog) in cmd/server; tests
// and zero-value construction fall back to defLogger.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity.
type Identity interface {
	ID() string
	Name() string
	Email() string
	Role() string
}

// Config holds auth options. The concrete implementation lives in the
// config package and is constructed once at startup; nothing in this
// package reads ambient state.
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetAuthScheme() string
	GetBcryptCost() int
}

// TokenService mints and validates signed identity assertions.
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidator validates tokens and extracts claims without tying
// callers to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AccountStore is the slice of the users repository the authenticator
// needs: one lookup per identifier, plus create, update, and soft delete.
// The full Users repository satisfies it; tests supply mocks.
type AccountStore interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, record *User) (*User, error)
	UpdateProfile(ctx context.Context, record *User) (*User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PrincipalResolver maps verified claims to a live account record.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims AuthClaims) (*User, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CLASSROOM "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CLASSROOM "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CLASSROOM "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CLASSROOM "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// Now is the clock used when stamping records; swapped in tests.
var Now = time.Now

// Package jwtware guards routes with bearer-token authentication. It
// validates the raw token, resolves the live account behind it on every
// request, and stores both in the request context for downstream
// handlers.
package jwtware

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

var defaultTokenLookup = "header:" + router.HeaderAuthorization

// ErrMissingToken is returned when no credential is present in any of
// the configured lookup locations.
var ErrMissingToken = errors.New("authentication token missing", errors.CategoryAuth).
	WithTextCode("TOKEN_MISSING").
	WithCode(errors.CodeUnauthorized)

// TokenValidator verifies a raw token and returns its claims. It mirrors
// the token service's Validate method so this package does not import it.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims is the structural view of verified claims this middleware
// needs. The concrete type lives with the token service.
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
}

// PrincipalResolver maps verified claims to a live account. Returning an
// error rejects the request; the resolver decides what a missing or
// deactivated account maps to.
type PrincipalResolver func(ctx context.Context, claims AuthClaims) (any, error)

type Config struct {
	// Filter skips the middleware entirely when it returns true.
	Filter func(router.Context) bool

	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler

	// TokenValidator is required.
	TokenValidator TokenValidator

	// ResolvePrincipal, when set, runs after validation on every request
	// so revoked or deactivated accounts are rejected even with an
	// otherwise valid token.
	ResolvePrincipal PrincipalResolver

	// ContextKey is the Locals key the claims are stored under.
	ContextKey string
	// PrincipalKey is the Locals key the resolved account is stored under.
	PrincipalKey string

	// TokenLookup is a comma separated list of source:name pairs, e.g.
	// "header:Authorization,cookie:jwt,query:auth_token".
	TokenLookup string
	// AuthScheme is the optional header prefix. A bare token without the
	// prefix is accepted too.
	AuthScheme string

	// ContextEnricher propagates claims into the standard context after
	// successful validation.
	ContextEnricher func(c context.Context, claims AuthClaims) context.Context
}

func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := ExtractRawTokenFromContext(ctx, cfg.getExtractors())
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			claims, err := cfg.TokenValidator.Validate(raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, claims)

			if cfg.ResolvePrincipal != nil {
				principal, err := cfg.ResolvePrincipal(ctx.Context(), claims)
				if err != nil {
					return cfg.ErrorHandler(ctx, err)
				}
				ctx.Locals(cfg.PrincipalKey, principal)
			}

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), claims))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

func ExtractRawTokenFromContext(ctx router.Context, extractors []JWTExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(ctx)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			return c.Status(router.StatusUnauthorized).SendString("invalid or expired token")
		}
	}

	if cfg.TokenValidator == nil {
		panic("jwtware: TokenValidator is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "claims"
	}

	if cfg.PrincipalKey == "" {
		cfg.PrincipalKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func (cfg *Config) getExtractors() []JWTExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:jwt,query:auth_token,param:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		if len(parts) < 2 {
			continue
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		case "param":
			extractors = append(extractors, jwtFromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, jwtFromCookie(parts[1]))
		}
	}

	return extractors
}

type JWTExtractor func(c router.Context) (string, error)

// jwtFromHeader extracts the token from the request header. The scheme
// prefix is stripped when present; a bare token is passed through.
func jwtFromHeader(header string, authScheme string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		a := strings.TrimSpace(c.GetString(header, ""))
		if a == "" {
			return "", ErrMissingToken
		}
		scheme := strings.TrimSpace(authScheme)
		l := len(scheme)
		if l > 0 && len(a) > l+1 && strings.EqualFold(a[:l], scheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return a, nil
	}
}

// jwtFromQuery extracts the token from the query string.
func jwtFromQuery(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Query(param, "")
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// jwtFromParam extracts the token from the url param string.
func jwtFromParam(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Param(param)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// jwtFromCookie extracts the token from the named cookie.
func jwtFromCookie(name string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

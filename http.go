package classroom

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-classroom/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// Locals keys used by the protected-route middleware.
const (
	ClaimsContextKey    = "claims"
	PrincipalContextKey = "user"
)

// RouteAuthenticator wires bearer-token protection into the JSON API.
// Every guarded request re-resolves the account behind the token, so a
// deactivated account is rejected on its next request regardless of
// token expiry.
type RouteAuthenticator struct {
	auther       *Auther
	cfg          Config
	Logger       Logger
	ErrorHandler router.ErrorHandler
}

func NewHTTPAuthenticator(auther *Auther, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auther: auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	a.Logger = logger
	return a
}

// ProtectedRoute returns the middleware guarding authenticated routes.
func (a *RouteAuthenticator) ProtectedRoute() router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   a.ErrorHandler,
		TokenValidator: tokenValidatorAdapter{a.auther.TokenService()},
		ResolvePrincipal: func(ctx context.Context, claims jwtware.AuthClaims) (any, error) {
			ac, ok := claims.(AuthClaims)
			if !ok {
				return nil, ErrUnknownPrincipal
			}
			return a.auther.ResolvePrincipal(ctx, ac)
		},
		ContextKey:   ClaimsContextKey,
		PrincipalKey: PrincipalContextKey,
		AuthScheme:   a.cfg.GetAuthScheme(),
		ContextEnricher: func(c context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(c, ac)
			}
			return c
		},
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error

	if IsTokenExpiredError(err) {
		richErr = ErrTokenExpired
	} else if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "invalid authentication token").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"auth middleware rejected request: error=%s text_code=%s path=%s",
		richErr.Message, richErr.TextCode, c.OriginalURL(),
	)

	return WriteError(c, richErr)
}

// tokenValidatorAdapter narrows the token service return type to the
// interface the middleware declares.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (v tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireRoles gates a route on the resolved principal's current role.
// It must run after ProtectedRoute; without a resolved principal every
// request is rejected.
func RequireRoles(roles ...UserRole) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			principal, _ := c.Locals(PrincipalContextKey).(*User)
			if err := Authorize(principal, roles...); err != nil {
				return WriteError(c, err)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the principal resolved by the protected-route
// middleware for this request.
func CurrentUser(c router.Context) (*User, error) {
	principal, ok := c.Locals(PrincipalContextKey).(*User)
	if !ok || principal == nil {
		return nil, ErrUnknownPrincipal
	}
	return principal, nil
}

// CurrentClaims returns the verified token claims for this request.
func CurrentClaims(c router.Context) (AuthClaims, error) {
	claims, ok := c.Locals(ClaimsContextKey).(AuthClaims)
	if !ok || claims == nil {
		return nil, ErrUnknownPrincipal
	}
	return claims, nil
}

// WriteError renders any error as the JSON error envelope, mapping the
// error taxonomy to HTTP status codes. Ozzo validation failures become a
// 400 with a per-field map; anything without a category is a 500 with
// the original message withheld from the client.
func WriteError(c router.Context, err error) error {
	var richErr *errors.Error

	if vErrs, ok := err.(validation.Errors); ok {
		fields := map[string]any{}
		for name, fieldErr := range vErrs {
			fields[name] = fieldErr.Error()
		}
		richErr = errors.New("payload validation failed", errors.CategoryValidation).
			WithTextCode("VALIDATION_FAILED").
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"fields": fields})
	} else if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	body := map[string]any{
		"message": richErr.Message,
	}
	if richErr.TextCode != "" {
		body["text_code"] = richErr.TextCode
	}
	if fields, ok := richErr.Metadata["fields"]; ok {
		body["validation"] = fields
	}

	return c.JSON(status, map[string]any{"error": body})
}

// DebugError pretty prints the full error, metadata included, for
// development logs.
func DebugError(lgr Logger, err error) {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		lgr.Debug("error: %s", err)
		return
	}
	lgr.Debug("error: %s metadata=%s", richErr.Message, print.MaybePrettyJSON(richErr.Metadata))
}

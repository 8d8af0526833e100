package classroom

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// RegisterInput carries the contracted registration vocabulary.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            UserRole
}

// ProfileUpdate is the whitelisted field set a profile update may touch.
// Nil pointers leave the field alone; Deactivate flips the soft-delete
// flag and is the only path that does so.
type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
	Bio            *string
	Role           *UserRole
	Status         *string
	Deactivate     bool
}

// Auther owns the account lifecycle and authentication flows. It is safe
// for concurrent use: the signing key and bcrypt cost are read-only after
// construction, and every operation is self-contained per call.
type Auther struct {
	store        AccountStore
	tokenService TokenService
	bcryptCost   int
	logger       Logger
}

// NewAuthenticator returns a new Auther bound to the account store.
func NewAuthenticator(store AccountStore, cfg Config) *Auther {
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		jwt.ClaimStrings(cfg.GetAudience()),
		defLogger{},
	)

	return &Auther{
		store:        store,
		tokenService: tokenService,
		bcryptCost:   cfg.GetBcryptCost(),
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, mostly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Auther.
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates an account and issues its first token. The confirm
// check runs before anything else, and the duplicate-email check runs
// before hashing so a doomed registration never pays the bcrypt cost.
func (s *Auther) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	if input.Password != input.PasswordConfirm {
		return nil, "", ErrPasswordMismatch
	}

	if err := ValidatePasswordStrength(input.Password); err != nil {
		return nil, "", err
	}

	if !IsValidRole(input.Role) {
		return nil, "", errors.New("unknown role label", errors.CategoryValidation).
			WithTextCode("INVALID_ROLE").
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"role": input.Role})
	}

	email := NormalizeEmail(input.Email)

	taken, err := s.store.EmailTaken(ctx, email)
	if err != nil {
		return nil, "", InternalError(err, "failed to check email availability")
	}
	if taken {
		return nil, "", ErrDuplicateEmail
	}

	hash, err := HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", InternalError(err, "failed to hash password")
	}

	user := &User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}

	// Deterministic id from the normalized email keeps re-registration of
	// a purged address stable across environments.
	if id, err := hashid.NewUUID(email); err == nil {
		user.ID = id
	}

	created, err := s.store.Register(ctx, user)
	if err != nil {
		// Two registrations can race past the availability check; the
		// store's unique index settles it and we report it the same way.
		if isUniqueViolation(err) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", InternalError(err, "failed to create account")
	}

	token, err := s.tokenService.Generate(identityOf(created))
	if err != nil {
		return nil, "", InternalError(err, "failed to issue token")
	}

	return created, token, nil
}

// Login authenticates an email/password pair and issues a token embedding
// the account's role. Unknown email and wrong password produce the
// identical failure so callers cannot probe for registered addresses.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", InternalError(err, "failed to retrieve account during login")
	}

	if !PasswordMatches(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identityOf(user))
	if err != nil {
		return nil, "", InternalError(err, "failed to issue token")
	}

	return user, token, nil
}

// ResolvePrincipal maps verified claims to a live account record. A
// missing account and a deactivated one are indistinguishable here. Every
// request re-resolves; there is no cache, so deactivation takes effect on
// the next request.
func (s *Auther) ResolvePrincipal(ctx context.Context, claims AuthClaims) (*User, error) {
	if claims == nil {
		return nil, ErrUnknownPrincipal
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrUnknownPrincipal
	}

	user, err := s.store.FindActiveByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUnknownPrincipal
		}
		return nil, InternalError(err, "failed to resolve principal")
	}

	if user.IsDeleted() {
		return nil, ErrUnknownPrincipal
	}

	return user, nil
}

// UpdateProfile applies a whitelisted field set to the account. It is the
// only operation that may deactivate an account; purging rows is not
// offered here at all.
func (s *Auther) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfileUpdate) (*User, error) {
	user, err := s.store.FindActiveByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, InternalError(err, "failed to load account")
	}

	if patch.Role != nil && !IsValidRole(*patch.Role) {
		return nil, errors.New("unknown role label", errors.CategoryValidation).
			WithTextCode("INVALID_ROLE").
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"role": *patch.Role})
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}

	updated, err := s.store.UpdateProfile(ctx, user)
	if err != nil {
		return nil, InternalError(err, "failed to update account")
	}

	if patch.Deactivate {
		if err := s.store.Deactivate(ctx, id); err != nil {
			if errors.IsNotFound(err) {
				return nil, ErrAccountNotFound
			}
			return nil, InternalError(err, "failed to deactivate account")
		}
		now := Now()
		updated.DeletedAt = &now
	}

	return updated, nil
}

type authIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Name() string  { return a.name }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Role() string  { return a.role }

var _ Identity = authIdentity{}

func identityOf(u *User) Identity {
	return authIdentity{
		id:    u.ID.String(),
		name:  u.Name,
		email: u.Email,
		role:  string(u.Role),
	}
}

package classroom

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the public authentication endpoints.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

type AuthController struct {
	Debug  bool
	Logger Logger
	Auther *Auther
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("auth controller requires an Auther")
	}

	return c
}

// RegistrationCreatePayload is the registration request body.
type RegistrationCreatePayload struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"passwordConfirm" json:"passwordConfirm"`
	Role            string `form:"role" json:"role"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.PasswordConfirm,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.Role, validation.In("", RoleStudent, RoleStaff, RoleAdmin)),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register: validate payload: %s", err)
		return WriteError(ctx, err)
	}

	user, token, err := a.Auther.Register(ctx.Context(), RegisterInput{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password,
		PasswordConfirm: payload.PasswordConfirm,
		Role:            payload.Role,
	})
	if err != nil {
		a.Logger.Error("register: %s", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"user":  user.Summary(),
		"token": token,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}

	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	user, token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login failed: %s", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"user":  user.Summary(),
		"token": token,
	})
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return validation.NewError("validation_match", "values must match")
		}
		return nil
	}
}

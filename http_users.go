package classroom

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterUserRoutes mounts the account management endpoints. The group
// must already be behind ProtectedRoute; listing and role changes are
// additionally admin gated.
func RegisterUserRoutes[T any](app router.Router[T], controller *UsersController) {
	admin := RequireRoles(RoleAdmin)

	app.Get("/users", admin(controller.List)).SetName("users.list")
	app.Get("/users/:id", controller.Show).SetName("users.show")
	app.Patch("/users/:id", controller.Update).SetName("users.update")
	app.Delete("/users/:id", admin(controller.Deactivate)).SetName("users.deactivate")
}

type UsersController struct {
	Logger Logger
	Repo   Users
	Auther *Auther
}

func NewUsersController(repo Users, auther *Auther) *UsersController {
	return &UsersController{
		Logger: defLogger{},
		Repo:   repo,
		Auther: auther,
	}
}

func (u *UsersController) WithLogger(logger Logger) *UsersController {
	u.Logger = logger
	return u
}

// List returns every active account. The password hash never serializes;
// the model keeps it out of JSON.
func (u *UsersController) List(ctx router.Context) error {
	records, err := u.Repo.ListActive(ctx.Context())
	if err != nil {
		u.Logger.Error("users list: %s", err)
		return WriteError(ctx, InternalError(err, "failed to list accounts"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"users": records,
		"count": len(records),
	})
}

func (u *UsersController) Show(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	record, err := u.Repo.FindActiveByID(ctx.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return WriteError(ctx, ErrAccountNotFound)
		}
		u.Logger.Error("users show: %s", err)
		return WriteError(ctx, InternalError(err, "failed to load account"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{"user": record})
}

// UserUpdatePayload carries the profile fields a caller may change.
// Pointer fields distinguish absent keys from explicit zero values.
type UserUpdatePayload struct {
	Name           *string `form:"name" json:"name"`
	ProfilePicture *string `form:"profilePicture" json:"profilePicture"`
	Bio            *string `form:"bio" json:"bio"`
	Role           *string `form:"role" json:"role"`
	Status         *string `form:"status" json:"status"`
}

// Validate will validate the payload
func (r UserUpdatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Role, validation.In(RoleStudent, RoleStaff, RoleAdmin)),
	)
}

// Update applies a profile update. Anyone may edit their own record;
// editing someone else's record, or assigning a role, takes admin.
func (u *UsersController) Update(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	caller, err := CurrentUser(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	payload := new(UserUpdatePayload)
	if err := ctx.Bind(payload); err != nil {
		u.Logger.Error("users update: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}

	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	if caller.ID != id || payload.Role != nil {
		if err := Authorize(caller, RoleAdmin); err != nil {
			return WriteError(ctx, err)
		}
	}

	updated, err := u.Auther.UpdateProfile(ctx.Context(), id, ProfileUpdate{
		Name:           payload.Name,
		ProfilePicture: payload.ProfilePicture,
		Bio:            payload.Bio,
		Role:           payload.Role,
		Status:         payload.Status,
	})
	if err != nil {
		u.Logger.Error("users update: %s", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{"user": updated})
}

// Deactivate soft deletes the account. The record is retained and the
// email stays reserved.
func (u *UsersController) Deactivate(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	if _, err := u.Auther.UpdateProfile(ctx.Context(), id, ProfileUpdate{Deactivate: true}); err != nil {
		u.Logger.Error("users deactivate: %s", err)
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{"deactivated": id.String()})
}

func parseUserID(ctx router.Context) (uuid.UUID, error) {
	return parseRecordID(ctx, "account")
}

package classroom_test

import (
	"context"
	"testing"

	classroom "github.com/goliatone/go-classroom"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegistrationCreatePayloadValidate(t *testing.T) {
	valid := classroom.RegistrationCreatePayload{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "Sup3rSecret",
		PasswordConfirm: "Sup3rSecret",
		Role:            classroom.RoleStudent,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *classroom.RegistrationCreatePayload)
	}{
		{"missing name", func(p *classroom.RegistrationCreatePayload) { p.Name = "" }},
		{"bad email", func(p *classroom.RegistrationCreatePayload) { p.Email = "not-an-email" }},
		{"short password", func(p *classroom.RegistrationCreatePayload) { p.Password = "Ab1" }},
		{"confirm mismatch", func(p *classroom.RegistrationCreatePayload) { p.PasswordConfirm = "Other1thing" }},
		{"unknown role", func(p *classroom.RegistrationCreatePayload) { p.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid
			tt.mutate(&payload)
			assert.Error(t, payload.Validate())
		})
	}
}

func TestRegistrationCreateHandler(t *testing.T) {
	store := new(MockAccountStore)
	auther := newTestAuther(store)
	controller := classroom.NewAuthController(
		classroom.WithControllerAuther(auther),
	)

	store.On("EmailTaken", mock.Anything, "ada@example.com").Return(false, nil)
	store.On("Register", mock.Anything, mock.Anything).Return(&classroom.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
	}, nil)

	ctx := new(MockContext)
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*classroom.RegistrationCreatePayload)
		payload.Name = "Ada"
		payload.Email = "ada@example.com"
		payload.Password = "Sup3rSecret"
		payload.PasswordConfirm = "Sup3rSecret"
	}).Return(nil)
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusCreated, mock.MatchedBy(func(body any) bool {
		envelope, ok := body.(map[string]any)
		if !ok {
			return false
		}
		token, _ := envelope["token"].(string)
		return token != "" && envelope["user"] != nil
	})).Return(nil)

	err := controller.RegistrationCreate(ctx)
	assert.NoError(t, err)
	ctx.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRegistrationCreateHandlerDuplicateEmail(t *testing.T) {
	store := new(MockAccountStore)
	auther := newTestAuther(store)
	controller := classroom.NewAuthController(
		classroom.WithControllerAuther(auther),
	)

	store.On("EmailTaken", mock.Anything, "ada@example.com").Return(true, nil)

	ctx := new(MockContext)
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*classroom.RegistrationCreatePayload)
		payload.Name = "Ada"
		payload.Email = "ada@example.com"
		payload.Password = "Sup3rSecret"
		payload.PasswordConfirm = "Sup3rSecret"
	}).Return(nil)
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusConflict, mock.Anything).Return(nil)

	err := controller.RegistrationCreate(ctx)
	assert.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestRegistrationCreateHandlerValidationFailure(t *testing.T) {
	store := new(MockAccountStore)
	controller := classroom.NewAuthController(
		classroom.WithControllerAuther(newTestAuther(store)),
	)

	ctx := new(MockContext)
	ctx.On("Bind", mock.Anything).Return(nil)
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Return(nil)

	err := controller.RegistrationCreate(ctx)
	assert.NoError(t, err)

	// Nothing reached the store for an empty payload.
	store.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything)
	ctx.AssertExpectations(t)
}

func TestLoginPostHandler(t *testing.T) {
	hash, err := classroom.HashPassword("Sup3rSecret", 4)
	assert.NoError(t, err)

	store := new(MockAccountStore)
	auther := newTestAuther(store)
	controller := classroom.NewAuthController(
		classroom.WithControllerAuther(auther),
	)

	store.On("GetByEmail", mock.Anything, "ada@example.com").Return(&classroom.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hash,
	}, nil)

	ctx := new(MockContext)
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*classroom.LoginRequest)
		payload.Email = "ada@example.com"
		payload.Password = "Sup3rSecret"
	}).Return(nil)
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusOK, mock.Anything).Return(nil)

	err = controller.LoginPost(ctx)
	assert.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestLoginPostHandlerBadPassword(t *testing.T) {
	hash, err := classroom.HashPassword("Sup3rSecret", 4)
	assert.NoError(t, err)

	store := new(MockAccountStore)
	controller := classroom.NewAuthController(
		classroom.WithControllerAuther(newTestAuther(store)),
	)

	store.On("GetByEmail", mock.Anything, "ada@example.com").Return(&classroom.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hash,
	}, nil)

	ctx := new(MockContext)
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*classroom.LoginRequest)
		payload.Email = "ada@example.com"
		payload.Password = "WrongPassword1"
	}).Return(nil)
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Return(nil)

	err = controller.LoginPost(ctx)
	assert.NoError(t, err)
	ctx.AssertExpectations(t)
}

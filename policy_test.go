package classroom_test

import (
	"testing"

	classroom "github.com/goliatone/go-classroom"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		principal *classroom.User
		allowed   []classroom.UserRole
		expected  error
	}{
		{
			name:      "nil principal",
			principal: nil,
			allowed:   []classroom.UserRole{classroom.RoleAdmin},
			expected:  classroom.ErrUnknownPrincipal,
		},
		{
			name:      "no role assigned",
			principal: &classroom.User{},
			allowed:   []classroom.UserRole{classroom.RoleAdmin},
			expected:  classroom.ErrNoRole,
		},
		{
			name:      "role not in set",
			principal: &classroom.User{Role: classroom.RoleStudent},
			allowed:   []classroom.UserRole{classroom.RoleStaff, classroom.RoleAdmin},
			expected:  classroom.ErrForbidden,
		},
		{
			name:      "role in set",
			principal: &classroom.User{Role: classroom.RoleStaff},
			allowed:   []classroom.UserRole{classroom.RoleStaff, classroom.RoleAdmin},
			expected:  nil,
		},
		{
			name:      "admin allowed",
			principal: &classroom.User{Role: classroom.RoleAdmin},
			allowed:   []classroom.UserRole{classroom.RoleAdmin},
			expected:  nil,
		},
		{
			name:      "empty allowed set rejects everyone",
			principal: &classroom.User{Role: classroom.RoleAdmin},
			allowed:   nil,
			expected:  classroom.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classroom.Authorize(tt.principal, tt.allowed...)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, classroom.IsValidRole(""))
	assert.True(t, classroom.IsValidRole(classroom.RoleStudent))
	assert.True(t, classroom.IsValidRole(classroom.RoleStaff))
	assert.True(t, classroom.IsValidRole(classroom.RoleAdmin))
	assert.False(t, classroom.IsValidRole("superuser"))
}

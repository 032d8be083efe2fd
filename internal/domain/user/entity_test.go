//go:build unit

package user_test

import (
	"testing"

	"ticketapp/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("buyer@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed", user.RoleUser)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "buyer@example.com", u.Email().Value())
	assert.Equal(t, user.RoleUser, u.Role())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
}

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "valid address", input: "valid@example.com", want: "valid@example.com"},
		{name: "trims whitespace", input: "  padded@example.com  ", want: "padded@example.com"},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "invalid@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, email.Value())
		})
	}
}

func TestNewRole(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  user.Role
		errIs error
	}{
		{name: "user", input: "USER", want: user.RoleUser},
		{name: "host", input: "HOST", want: user.RoleHost},
		{name: "admin", input: "ADMIN", want: user.RoleAdmin},
		{name: "lowercase rejected", input: "user", errIs: user.ErrInvalidRole},
		{name: "unknown rejected", input: "SUPERVISOR", errIs: user.ErrInvalidRole},
		{name: "empty rejected", input: "", errIs: user.ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := user.NewRole(tc.input)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestCanHostEvents(t *testing.T) {
	assert.False(t, user.RoleUser.CanHostEvents())
	assert.True(t, user.RoleHost.CanHostEvents())
	assert.True(t, user.RoleAdmin.CanHostEvents())
}

func TestNewCredentials(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		errIs    error
	}{
		{name: "valid pair", email: "a@example.com", password: "password123"},
		{name: "bad email", email: "nope", password: "password123", errIs: user.ErrInvalidEmail},
		{name: "short password", email: "a@example.com", password: "short", errIs: user.ErrPasswordTooWeak},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creds, err := user.NewCredentials(tc.email, tc.password)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.email, creds.Email().Value())
			assert.Equal(t, tc.password, creds.Password().Value())
		})
	}
}

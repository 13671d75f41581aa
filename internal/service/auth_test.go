package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/service"
)

func TestAuthenticator_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.auth.Register(ctx, service.RegisterInput{
		Email:             "owner@example.com",
		Password:          "password123",
		Name:              "Owner",
		Bio:               "hello",
		ProfilePictureURL: "http://img",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	user, err := f.store.Users().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Owner", user.Name)
	assert.Equal(t, "http://img", user.ProfilePictureURL)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, auth.ComparePassword(user.PasswordHash, "password123"))
}

func TestAuthenticator_Register_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, service.RegisterInput{Email: "dup@example.com", Password: "one"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, service.RegisterInput{Email: "dup@example.com", Password: "two"})
	assert.ErrorIs(t, err, service.ErrDuplicateEmail)
}

func TestAuthenticator_Register_RequiresEmailAndPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   service.RegisterInput
	}{
		{"empty email", service.RegisterInput{Password: "pw"}},
		{"blank email", service.RegisterInput{Email: "  ", Password: "pw"}},
		{"empty password", service.RegisterInput{Email: "a@b.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tc.in)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestAuthenticator_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.auth.Register(ctx, service.RegisterInput{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	token, err := f.auth.Login(ctx, "owner@example.com", "password123")
	require.NoError(t, err)

	identity, err := f.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UserID)
	assert.Equal(t, "owner@example.com", identity.Email)
}

func TestAuthenticator_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, service.RegisterInput{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := f.auth.Login(ctx, "owner@example.com", "wrong")
	_, unknownEmail := f.auth.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticator_Login_MissingCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, service.ErrMissingCredentials)

	_, err = f.auth.Login(ctx, "a@b.com", "")
	assert.ErrorIs(t, err, service.ErrMissingCredentials)
}

func TestAuthenticator_Register_PasswordLengthLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, service.RegisterInput{
		Email:    "long@example.com",
		Password: strings.Repeat("p", service.MaxPasswordBytes+1),
	})
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.store.Users().FindByEmail(ctx, "long@example.com")
	assert.Error(t, err, "rejected registration must not persist a user")

	id, err := f.auth.Register(ctx, service.RegisterInput{
		Email:    "exact@example.com",
		Password: strings.Repeat("p", service.MaxPasswordBytes),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)
}

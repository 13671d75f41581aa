package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/models"
	"github.com/hongminglow/linkinbio-be/internal/storage"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email             string
	Password          string
	Name              string
	Bio               string
	ProfilePictureURL string
}

// Authenticator registers users and exchanges credentials for session tokens.
type Authenticator struct {
	users      storage.UserStore
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthenticator creates an Authenticator. Production callers pass
// auth.DefaultBcryptCost.
func NewAuthenticator(users storage.UserStore, tokens *auth.TokenManager, bcryptCost int) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register stores a new user with a hashed password and returns its id.
// Email uniqueness is left to the store's constraint.
func (a *Authenticator) Register(ctx context.Context, in RegisterInput) (int64, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return 0, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(in.Password) > MaxPasswordBytes {
		return 0, ErrPasswordTooLong
	}

	hash, err := auth.HashPassword(in.Password, a.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	created, err := a.users.CreateUser(ctx, models.User{
		Email:             email,
		PasswordHash:      hash,
		Name:              in.Name,
		Bio:               in.Bio,
		ProfilePictureURL: in.ProfilePictureURL,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return created.ID, nil
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password both yield ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !auth.ComparePassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

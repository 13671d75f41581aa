package service

import (
	"errors"
	"fmt"
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

var (
	ErrValidation         = errors.New("validation failed")
	ErrMissingCredentials = errors.New("email and password required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("user not found")
)

// ErrPasswordTooLong is a validation failure for passwords bcrypt would reject.
var ErrPasswordTooLong = fmt.Errorf("%w: password longer than %d bytes", ErrValidation, MaxPasswordBytes)


package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/linkinbio-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore is the credential store: persisted users with their password hash.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	// First returns the user with the lowest id, i.e. the seeded profile.
	First(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, bio string) error
}

// LinkStore persists ordered link lists owned by a user.
type LinkStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Link, error)
	DeleteAllByUser(ctx context.Context, userID int64) error
	// InsertMany stores links in slice order. Callers validate the links.
	InsertMany(ctx context.Context, links []models.Link) error
}

// Tx exposes stores bound to a single database transaction.
type Tx interface {
	Users() UserStore
	Links() LinkStore
}

// Store is the process-wide handle on the database.
type Store interface {
	Tx
	// WithTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

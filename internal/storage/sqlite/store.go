package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/linkinbio-be/internal/models"
	"github.com/hongminglow/linkinbio-be/internal/storage"
	"github.com/hongminglow/linkinbio-be/internal/storage/migrations"
	"github.com/pressly/goose/v3"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var _ storage.Store = (*Store)(nil)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides SQLite-backed persistence for users and links.
type Store struct {
	db    *sql.DB
	users *UserStore
	links *LinkStore
}

// NewStore opens the SQLite database at path with WAL and foreign keys enabled.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// PRAGMAs are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{
		db:    db,
		users: &UserStore{db: db},
		links: &LinkStore{db: db},
	}, nil
}

// Users returns the connection-bound user store.
func (s *Store) Users() storage.UserStore { return s.users }

// Links returns the connection-bound link store.
func (s *Store) Links() storage.LinkStore { return s.links }

// WithTx runs fn in a single transaction, rolling back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx storage.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(txStores{users: &UserStore{db: tx}, links: &LinkStore{db: tx}}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate applies the embedded SQLite schema.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, s.db, goose.DialectSQLite3)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	_ = s.db.Close()
}

type txStores struct {
	users *UserStore
	links *LinkStore
}

func (t txStores) Users() storage.UserStore { return t.users }
func (t txStores) Links() storage.LinkStore { return t.links }

// UserStore persists users.
type UserStore struct {
	db dbtx
}

const userColumns = `id, email, password, name, bio, profile_picture_url`

// CreateUser inserts a new user row. A duplicate email yields storage.ErrAlreadyExists.
func (r *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, name, bio, profile_picture_url)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, user.Bio, user.ProfilePictureURL,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	return user, nil
}

// FindByEmail fetches a user by email address. Matching is case-sensitive.
func (r *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row, "query user by email")
}

// FindByID fetches a user by primary key.
func (r *UserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row, "query user by id")
}

// First fetches the earliest registered user.
func (r *UserStore) First(ctx context.Context) (models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT 1`)
	return scanUser(row, "query first user")
}

// UpdateProfile overwrites name and bio.
func (r *UserStore) UpdateProfile(ctx context.Context, id int64, name, bio string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, bio = ? WHERE id = ?`, name, bio, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row, op string) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Bio, &user.ProfilePictureURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// LinkStore persists link lists.
type LinkStore struct {
	db dbtx
}

// ListByUser returns the user's links in written order.
func (r *LinkStore) ListByUser(ctx context.Context, userID int64) ([]models.Link, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, title, url FROM links WHERE user_id = ? ORDER BY sort_order`, userID)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.UserID, &link.Title, &link.URL); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// DeleteAllByUser removes every link owned by userID.
func (r *LinkStore) DeleteAllByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	return nil
}

// InsertMany stores links one row at a time, recording slice order in sort_order.
func (r *LinkStore) InsertMany(ctx context.Context, links []models.Link) error {
	for i, link := range links {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO links (user_id, sort_order, title, url) VALUES (?, ?, ?, ?)`,
			link.UserID, i, link.Title, link.URL,
		)
		if err != nil {
			return fmt.Errorf("insert link %d: %w", i, err)
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/linkinbio-be/internal/models"
	"github.com/hongminglow/linkinbio-be/internal/storage"
	"github.com/hongminglow/linkinbio-be/internal/storage/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store provides Postgres-backed persistence for users and links.
type Store struct {
	pool  *pgxpool.Pool
	users *UserStore
	links *LinkStore
}

// NewStore connects to databaseURL. Call Migrate before serving traffic.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{
		pool:  pool,
		users: &UserStore{q: pool},
		links: &LinkStore{q: pool},
	}, nil
}

// Users returns the pool-bound user store.
func (s *Store) Users() storage.UserStore { return s.users }

// Links returns the pool-bound link store.
func (s *Store) Links() storage.LinkStore { return s.links }

// WithTx runs fn in a single transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(txStores{users: &UserStore{q: tx}, links: &LinkStore{q: tx}})
	})
}

// Migrate applies the embedded schema through a database/sql view of the pool.
// Closing the view leaves the pool open.
func (s *Store) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()
	return migrations.Up(ctx, db, goose.DialectPostgres)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

type txStores struct {
	users *UserStore
	links *LinkStore
}

func (t txStores) Users() storage.UserStore { return t.users }
func (t txStores) Links() storage.LinkStore { return t.links }

// UserStore persists users.
type UserStore struct {
	q querier
}

const userColumns = `id, email, password, name, bio, profile_picture_url`

// CreateUser inserts a new user row. A duplicate email yields storage.ErrAlreadyExists.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (email, password, name, bio, profile_picture_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	row := s.q.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Name, user.Bio, user.ProfilePictureURL)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindByEmail fetches a user by email address. Matching is case-sensitive.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (s *UserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// First fetches the earliest registered user.
func (s *UserStore) First(ctx context.Context) (models.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT 1`)
	return scanUser(row)
}

// UpdateProfile overwrites name and bio.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, name, bio string) error {
	tag, err := s.q.Exec(ctx, `UPDATE users SET name = $1, bio = $2 WHERE id = $3`, name, bio, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Bio, &user.ProfilePictureURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// LinkStore persists link lists.
type LinkStore struct {
	q querier
}

// ListByUser returns the user's links in written order.
func (s *LinkStore) ListByUser(ctx context.Context, userID int64) ([]models.Link, error) {
	rows, err := s.q.Query(ctx, `
		SELECT user_id, title, url
		FROM links
		WHERE user_id = $1
		ORDER BY sort_order`, userID)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Link, error) {
		var link models.Link
		err := row.Scan(&link.UserID, &link.Title, &link.URL)
		return link, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan links: %w", err)
	}
	return links, nil
}

// DeleteAllByUser removes every link owned by userID.
func (s *LinkStore) DeleteAllByUser(ctx context.Context, userID int64) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM links WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	return nil
}

// InsertMany bulk-loads links with COPY, recording slice order in sort_order.
func (s *LinkStore) InsertMany(ctx context.Context, links []models.Link) error {
	if len(links) == 0 {
		return nil
	}
	_, err := s.q.CopyFrom(ctx,
		pgx.Identifier{"links"},
		[]string{"user_id", "sort_order", "title", "url"},
		pgx.CopyFromSlice(len(links), func(i int) ([]any, error) {
			return []any{links[i].UserID, int32(i), links[i].Title, links[i].URL}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert links: %w", err)
	}
	return nil
}

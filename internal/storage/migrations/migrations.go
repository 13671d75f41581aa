// Package migrations holds the embedded schema for every supported database
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Up applies all pending migrations for dialect. Already applied versions are
// skipped, so calling Up repeatedly is safe.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys, err := dialectFS(dialect)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("init goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied", "dialect", string(dialect), "source", res.Source.Path, "duration", res.Duration)
	}
	return nil
}

func dialectFS(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectPostgres:
		return fs.Sub(files, "postgres")
	case goose.DialectSQLite3:
		return fs.Sub(files, "sqlite")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Package backend picks the storage implementation named by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/hongminglow/linkinbio-be/internal/config"
	"github.com/hongminglow/linkinbio-be/internal/storage"
	"github.com/hongminglow/linkinbio-be/internal/storage/postgres"
	"github.com/hongminglow/linkinbio-be/internal/storage/sqlite"
)

// Open connects to the configured database and applies migrations.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		store, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		store, err = sqlite.NewStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

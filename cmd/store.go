package cmd

import (
	"context"
	"fmt"

	"github.com/memoprint/memoprint/internal/config"
	"github.com/memoprint/memoprint/internal/project"
	"github.com/memoprint/memoprint/internal/project/fsstore"
	"github.com/memoprint/memoprint/internal/project/postgres"
)

// openStore selects the project store backend. A DATABASE_URL picks
// PostgreSQL (and runs pending migrations); otherwise projects live on
// the filesystem under the configured data directory.
func openStore(ctx context.Context, cfg *config.Config) (project.Store, error) {
	if cfg.Database.URL != "" {
		pool, err := postgres.NewPool(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgres.NewProjectRepository(pool), nil
	}

	store, err := fsstore.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open project storage at %s: %w", cfg.Storage.DataDir, err)
	}
	return store, nil
}

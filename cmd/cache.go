package main

import (
	"context"
	"fmt"

	"github.com/tracklift/tracklift/internal/repositories"
	"github.com/tracklift/tracklift/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCacheRepo opens the configured database and returns a cache repository.
// The caller owns the returned close function.
func (r *Runner) openCacheRepo() (*repositories.SearchCacheRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return repositories.NewSearchCacheRepository(db), func() { db.Close() }, nil
}

// CacheStats reports the number of live search-cache entries.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openCacheRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	count, err := repo.Count()
	if err != nil {
		return err
	}

	r.writePlain("Cached search results: %d\n", count)
	return nil
}

// CacheClear purges all cached search results.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openCacheRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	purged, err := repo.Purge()
	if err != nil {
		return err
	}

	r.logger.Info("search cache purged", "entries", purged)
	r.writePlain("Purged %d cached search results.\n", purged)
	return nil
}

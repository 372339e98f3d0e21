package repositories

import (
	"fmt"
	"strings"

	"github.com/tracklift/tracklift/internal/models"
)

// SearchCacheAdapter implements tasks.TrackCacher using SearchCacheRepository.
//
// Provides automatic search-result caching with deduplication via the query
// UNIQUE constraint. Duplicate entries are silently ignored.
type SearchCacheAdapter struct {
	repo *SearchCacheRepository
}

// NewSearchCacheAdapter creates a new SearchCacheAdapter with the given repository
func NewSearchCacheAdapter(repo *SearchCacheRepository) *SearchCacheAdapter {
	return &SearchCacheAdapter{repo: repo}
}

// Lookup returns the cached hit for a normalized query, if one exists.
func (a *SearchCacheAdapter) Lookup(query string) (models.SearchHit, bool) {
	entry, err := a.repo.GetByQuery(query)
	if err != nil || entry == nil {
		return models.SearchHit{}, false
	}
	return entry.Hit(), true
}

// Store caches a search result under its normalized query.
// Returns nil if an entry for the query already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *SearchCacheAdapter) Store(query string, hit models.SearchHit) error {
	entry := models.NewCachedHit(0, query, hit)

	if err := a.repo.Create(entry); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache search result: %w", err)
	}

	return nil
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/shared"
)

// SearchCacheRepository implements models.Repository[*models.CachedHit] for
// destination search results.
//
// Entries are keyed by normalized query with a UNIQUE constraint, so repeat
// transfers of overlapping libraries resolve tracks without hitting the
// destination search endpoint again. Soft deletes keep history inspectable.
type SearchCacheRepository struct {
	db *sql.DB
}

// NewSearchCacheRepository creates a new SearchCacheRepository with the given database connection
func NewSearchCacheRepository(db *sql.DB) *SearchCacheRepository {
	return &SearchCacheRepository{db: db}
}

// Create inserts a new [models.CachedHit] into the database with generated ID and sequence
func (r *SearchCacheRepository) Create(hit *models.CachedHit) error {
	sequence, err := NextSequence(r.db, "search_cache")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	hit.SetID(id)

	if err := hit.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO search_cache (id, sequence, query, media_id, title, artist, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		hit.Query(),
		hit.MediaID(),
		hit.Title(),
		hit.Artist(),
		hit.CreatedAt(),
		hit.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return nil
}

// Get retrieves a cache entry by ID, excluding soft-deleted entries
func (r *SearchCacheRepository) Get(id string) (*models.CachedHit, error) {
	query := `
		SELECT id, sequence, query, media_id, title, artist, created_at, updated_at, deleted_at
		FROM search_cache
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByQuery retrieves a cache entry by its normalized query string
func (r *SearchCacheRepository) GetByQuery(normalized string) (*models.CachedHit, error) {
	query := `
		SELECT id, sequence, query, media_id, title, artist, created_at, updated_at, deleted_at
		FROM search_cache
		WHERE query = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, normalized))
}

// Update modifies an existing cache entry in the database
func (r *SearchCacheRepository) Update(hit *models.CachedHit) error {
	if err := hit.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	hit.SetUpdatedAt(now)

	query := `
		UPDATE search_cache
		SET media_id = ?, title = ?, artist = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		hit.MediaID(),
		hit.Title(),
		hit.Artist(),
		now,
		hit.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cache entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cache entry not found or already deleted: %s", hit.ID())
	}

	return nil
}

// Delete soft-deletes a cache entry by ID
func (r *SearchCacheRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE search_cache
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cache entry not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cache entries matching the given criteria, excluding soft-deleted entries
func (r *SearchCacheRepository) List(criteria map[string]any) ([]*models.CachedHit, error) {
	query := `
		SELECT id, sequence, query, media_id, title, artist, created_at, updated_at, deleted_at
		FROM search_cache
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if artist, ok := criteria["artist"].(string); ok && artist != "" {
		query += " AND artist = ?"
		args = append(args, artist)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	var hits []*models.CachedHit
	for rows.Next() {
		hit, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return hits, nil
}

// Count returns the number of live cache entries
func (r *SearchCacheRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM search_cache WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// Purge soft-deletes every live cache entry and returns how many were affected
func (r *SearchCacheRepository) Purge() (int, error) {
	result, err := r.db.Exec("UPDATE search_cache SET deleted_at = ? WHERE deleted_at IS NULL", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// scanOne scans a single [sql.Row] into a [models.CachedHit]
func (r *SearchCacheRepository) scanOne(row *sql.Row) (*models.CachedHit, error) {
	var (
		id        string
		sequence  int
		query     string
		mediaID   string
		title     string
		artist    string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &query, &mediaID, &title, &artist, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cache entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}

	hit := models.NewCachedHit(sequence, query, models.SearchHit{
		MediaID: mediaID,
		Title:   title,
		Artist:  artist,
	})
	hit.SetID(id)
	hit.SetCreatedAt(createdAt)
	hit.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		hit.SetDeletedAt(&deletedAt.Time)
	}

	return hit, nil
}

// scanRow scans a row from [sql.Rows] into a [models.CachedHit]
func (r *SearchCacheRepository) scanRow(rows *sql.Rows) (*models.CachedHit, error) {
	var (
		id        string
		sequence  int
		query     string
		mediaID   string
		title     string
		artist    string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &query, &mediaID, &title, &artist, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}

	hit := models.NewCachedHit(sequence, query, models.SearchHit{
		MediaID: mediaID,
		Title:   title,
		Artist:  artist,
	})
	hit.SetID(id)
	hit.SetCreatedAt(createdAt)
	hit.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		hit.SetDeletedAt(&deletedAt.Time)
	}

	return hit, nil
}

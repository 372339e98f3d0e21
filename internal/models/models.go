package models

import (
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the tracklift service.
// Implementations include CachedHit.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Track represents a song extracted from the source service.
//
// Name alone is the identity used for progress tracking; artists only
// contribute to the destination search query.
type Track struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
}

// SearchQuery builds a destination search query from the track name followed by all artist names.
func (t Track) SearchQuery() string {
	parts := append([]string{t.Name}, t.Artists...)
	return strings.Join(parts, " ")
}

// Playlist represents a playlist on either service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// SearchHit represents the best match returned by a destination catalog search.
type SearchHit struct {
	MediaID string `json:"media_id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
}

// TransferState is the persisted progress record for a single in-flight transfer.
//
// Processed holds names of tracks already added to the destination playlist
// (append-only); Remaining holds pending tracks in source order. A track name
// appears in at most one of the two at any time.
type TransferState struct {
	PlaylistID string   `json:"playlist_id"`
	Processed  []string `json:"processed_tracks"`
	Remaining  []Track  `json:"remaining_tracks"`
}

// package services defines capability interfaces for the music catalogs a
// transfer reads from and writes to.
//
// Spotify (source), YouTube Music via proxy (destination)
package services

import (
	"context"

	"github.com/tracklift/tracklift/internal/models"
)

// TrackPage is one page of raw track items from a source collection.
//
// Items may be missing a name or artists when the source reports incomplete
// metadata; such items are skippable during extraction. NextCursor is empty
// when playlist pagination is exhausted; HasMore covers the saved-library
// offset style.
type TrackPage struct {
	Items      []models.Track
	NextCursor string
	HasMore    bool
}

// SourceCatalog reads track collections from the origin service.
type SourceCatalog interface {
	// GetPlaylists lists the user's playlists.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// PlaylistTracks returns one page of a playlist's tracks. An empty cursor
	// requests the first page; the returned NextCursor feeds the next call.
	PlaylistTracks(ctx context.Context, playlistID, cursor string) (*TrackPage, error)

	// SavedTracks returns one page of the user's liked/saved library starting
	// at the given offset.
	SavedTracks(ctx context.Context, offset int) (*TrackPage, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// DestinationCatalog searches and mutates playlists on the target service.
type DestinationCatalog interface {
	// GetPlaylist retrieves a playlist by ID. Returns an error wrapping
	// shared.ErrPlaylistNotFound when the destination has no such playlist.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// CreatePlaylist creates a new playlist and returns it with its assigned ID.
	CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error)

	// Search returns up to limit matches for the query, best first.
	// An empty result is a miss, not an error.
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)

	// AddPlaylistItem appends a single media item to a playlist. Errors wrap
	// shared.ErrQuotaExceeded when the destination's request budget is spent
	// and shared.ErrAPIRequest for other service-side failures.
	AddPlaylistItem(ctx context.Context, playlistID, mediaID string) error

	// Name returns the name of the service (e.g., "YouTube Music")
	Name() string
}

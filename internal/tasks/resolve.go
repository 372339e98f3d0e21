package tasks

import (
	"context"
	"fmt"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/services"
	"github.com/tracklift/tracklift/internal/shared"
)

// DefaultPlaylistDescription is applied when a created destination playlist
// has no caller-supplied description.
const DefaultPlaylistDescription = "Imported from Spotify"

// ResolvePlaylist turns a destination selector into a concrete playlist.
//
// An explicit ID takes precedence: the playlist is fetched and a miss is
// fatal, since an ID that does not resolve indicates operator error. With
// only a name, a new private playlist is always created; no dedup by name is
// attempted, so repeated runs with the same name create distinct playlists.
func ResolvePlaylist(ctx context.Context, dest services.DestinationCatalog, name, id, description string) (*models.Playlist, error) {
	if id != "" {
		playlist, err := dest.GetPlaylist(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch destination playlist %s: %w", id, err)
		}
		return playlist, nil
	}

	if name == "" {
		return nil, fmt.Errorf("%w: a destination playlist name or ID", shared.ErrMissingArgument)
	}

	if description == "" {
		description = DefaultPlaylistDescription
	}

	playlist, err := dest.CreatePlaylist(ctx, name, description, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination playlist: %w", err)
	}

	return playlist, nil
}

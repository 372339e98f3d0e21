package main

import (
	"context"
	"fmt"

	"github.com/tracklift/tracklift/internal/shared"
	"github.com/urfave/cli/v3"
)

// YTMusicSearch searches the YouTube Music proxy for a track.
func (r *Runner) YTMusicSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")

	if query == "" {
		return fmt.Errorf("%w: a search query", shared.ErrMissingArgument)
	}
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("searching YouTube Music for %q", query)

	hits, err := r.youtube.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(hits, true)
	}

	if len(hits) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	r.writePlain("Found %d results:\n\n", len(hits))
	for i, hit := range hits {
		r.writePlain("%d. %s - %s\n", i+1, hit.Artist, hit.Title)
		r.writePlain("   ID: %s\n", hit.MediaID)
	}

	return nil
}

// YTMusicCreate creates a playlist on YouTube Music.
func (r *Runner) YTMusicCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	description := cmd.String("description")
	private := cmd.Bool("private")

	if name == "" {
		return fmt.Errorf("%w: a playlist name", shared.ErrMissingArgument)
	}
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	playlist, err := r.youtube.CreatePlaylist(ctx, name, description, !private)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Playlist created: %s\n", playlist.Name)
	r.writePlain("  ID: %s\n", playlist.ID)
	return nil
}

// YTMusicAdd searches for a track and appends the best match to a playlist.
func (r *Runner) YTMusicAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist-id")
	query := cmd.String("track")

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	hits, err := r.youtube.Search(ctx, query, 1)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(hits) == 0 {
		return fmt.Errorf("%w: no results for %q", shared.ErrTrackNotFound, query)
	}

	hit := hits[0]
	if err := r.youtube.AddPlaylistItem(ctx, playlistID, hit.MediaID); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	r.writePlain("✓ Added %s - %s\n", hit.Artist, hit.Title)
	return nil
}

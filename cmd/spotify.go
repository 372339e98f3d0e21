package main

import (
	"context"
	"fmt"

	"github.com/tracklift/tracklift/internal/shared"
	"github.com/tracklift/tracklift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SpotifyPlaylists lists Spotify playlists with optional limit.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("listing spotify playlists with limit %v", limit)

	playlists, err := r.spotify.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, pl := range playlists {
		r.writePlain("%d. %s (%d tracks)\n", i+1, pl.Name, pl.TrackCount)
		r.writePlain("   ID: %s\n", pl.ID)
	}

	return nil
}

// SpotifyTracks previews the tracks a transfer would extract from the
// selected source.
func (r *Runner) SpotifyTracks(ctx context.Context, cmd *cli.Command) error {
	sel := tasks.SourceSelector{
		PlaylistID: cmd.String("playlist"),
		Liked:      cmd.Bool("liked"),
	}
	useJSON := cmd.Bool("json")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	tracks, skipped, err := tasks.ExtractTracks(ctx, r.spotify, sel)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(tracks, true)
	}

	r.writePlain("Extracted %d tracks", len(tracks))
	if skipped > 0 {
		r.writePlain(" (%d skipped for missing metadata)", skipped)
	}
	r.writePlain("\n\n")

	for i, track := range tracks {
		r.writePlain("%d. %s\n", i+1, track.SearchQuery())
	}

	return nil
}

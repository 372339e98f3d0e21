package tasks

import (
	"context"
	"fmt"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/services"
	"github.com/tracklift/tracklift/internal/shared"
)

// SourceSelector identifies the collection to extract: a playlist by ID, or
// the user's liked/saved library.
type SourceSelector struct {
	PlaylistID string
	Liked      bool
}

// Validate checks that exactly one collection is selected.
func (s SourceSelector) Validate() error {
	if s.PlaylistID == "" && !s.Liked {
		return fmt.Errorf("%w: a source playlist ID or the liked-songs flag", shared.ErrMissingArgument)
	}
	if s.PlaylistID != "" && s.Liked {
		return fmt.Errorf("%w: cannot select both a playlist and liked songs", shared.ErrInvalidArgument)
	}
	return nil
}

// ExtractTracks pages through the selected source collection until exhausted
// and returns a flat, source-ordered sequence of track descriptors.
//
// Items missing a name or artists are skipped and counted, not fatal: a
// single malformed entry must not sink the whole extraction. Ordering is
// preserved because it drives resume semantics downstream.
func ExtractTracks(ctx context.Context, src services.SourceCatalog, sel SourceSelector) ([]models.Track, int, error) {
	if err := sel.Validate(); err != nil {
		return nil, 0, err
	}

	var tracks []models.Track
	skipped := 0

	appendPage := func(page *services.TrackPage) {
		for _, item := range page.Items {
			if item.Name == "" || len(item.Artists) == 0 {
				skipped++
				continue
			}
			tracks = append(tracks, item)
		}
	}

	if sel.Liked {
		offset := 0
		for {
			page, err := src.SavedTracks(ctx, offset)
			if err != nil {
				return nil, skipped, fmt.Errorf("failed to list saved tracks: %w", err)
			}

			offset += len(page.Items)
			appendPage(page)

			if !page.HasMore || len(page.Items) == 0 {
				break
			}
		}
		return tracks, skipped, nil
	}

	cursor := ""
	for {
		page, err := src.PlaylistTracks(ctx, sel.PlaylistID, cursor)
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to list playlist tracks: %w", err)
		}

		appendPage(page)

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return tracks, skipped, nil
}

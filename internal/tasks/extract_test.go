package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/services"
	"github.com/tracklift/tracklift/internal/shared"
)

// pagedSource serves tracks in fixed-size pages to exercise pagination.
type pagedSource struct {
	tracks   []models.Track
	pageSize int
	calls    int
}

func (p *pagedSource) Name() string { return "Spotify" }

func (p *pagedSource) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return nil, nil
}

func (p *pagedSource) PlaylistTracks(ctx context.Context, playlistID, cursor string) (*services.TrackPage, error) {
	p.calls++
	start := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "%d", &start)
	}

	end := start + p.pageSize
	if end >= len(p.tracks) {
		return &services.TrackPage{Items: p.tracks[start:]}, nil
	}
	return &services.TrackPage{
		Items:      p.tracks[start:end],
		NextCursor: fmt.Sprintf("%d", end),
	}, nil
}

func (p *pagedSource) SavedTracks(ctx context.Context, offset int) (*services.TrackPage, error) {
	p.calls++
	if offset >= len(p.tracks) {
		return &services.TrackPage{}, nil
	}

	end := offset + p.pageSize
	if end > len(p.tracks) {
		end = len(p.tracks)
	}
	return &services.TrackPage{
		Items:   p.tracks[offset:end],
		HasMore: end < len(p.tracks),
	}, nil
}

func TestExtractTracks(t *testing.T) {
	all := []models.Track{
		tk("One", "A"), tk("Two", "B"), tk("Three", "C"), tk("Four", "D"), tk("Five", "E"),
	}

	t.Run("playlist pagination preserves order", func(t *testing.T) {
		src := &pagedSource{tracks: all, pageSize: 2}

		tracks, skipped, err := ExtractTracks(context.Background(), src, SourceSelector{PlaylistID: "sp1"})
		if err != nil {
			t.Fatalf("ExtractTracks() error = %v", err)
		}

		if len(tracks) != 5 {
			t.Fatalf("tracks = %d, want 5", len(tracks))
		}
		if skipped != 0 {
			t.Errorf("skipped = %d, want 0", skipped)
		}
		if src.calls != 3 {
			t.Errorf("page fetches = %d, want 3", src.calls)
		}
		for i, tr := range all {
			if tracks[i].Name != tr.Name {
				t.Errorf("tracks[%d] = %q, want %q", i, tracks[i].Name, tr.Name)
			}
		}
	})

	t.Run("liked library pagination", func(t *testing.T) {
		src := &pagedSource{tracks: all, pageSize: 2}

		tracks, _, err := ExtractTracks(context.Background(), src, SourceSelector{Liked: true})
		if err != nil {
			t.Fatalf("ExtractTracks() error = %v", err)
		}

		if len(tracks) != 5 {
			t.Fatalf("tracks = %d, want 5", len(tracks))
		}
	})

	t.Run("skips items with missing metadata", func(t *testing.T) {
		src := &pagedSource{
			tracks: []models.Track{
				tk("One", "A"),
				{Name: "", Artists: []string{"A"}},
				{Name: "No Artists"},
				tk("Two", "B"),
			},
			pageSize: 10,
		}

		tracks, skipped, err := ExtractTracks(context.Background(), src, SourceSelector{PlaylistID: "sp1"})
		if err != nil {
			t.Fatalf("ExtractTracks() error = %v", err)
		}

		if len(tracks) != 2 {
			t.Errorf("tracks = %d, want 2", len(tracks))
		}
		if skipped != 2 {
			t.Errorf("skipped = %d, want 2", skipped)
		}
	})

	t.Run("source failure is fatal", func(t *testing.T) {
		src := &mockSource{tracksErr: fmt.Errorf("%w: status 500", shared.ErrAPIRequest)}

		_, _, err := ExtractTracks(context.Background(), src, SourceSelector{PlaylistID: "sp1"})
		if err == nil {
			t.Fatal("ExtractTracks() should fail")
		}
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("error = %v, want ErrAPIRequest", err)
		}
	})

	t.Run("rejects empty selector", func(t *testing.T) {
		_, _, err := ExtractTracks(context.Background(), &mockSource{}, SourceSelector{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("error = %v, want ErrMissingArgument", err)
		}
	})
}

package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tracklift/tracklift/internal/shared"
	tu "github.com/tracklift/tracklift/internal/testing"
	"golang.org/x/oauth2"
)

// roundTripFunc inspects requests in flight; fixed responses use
// [tu.MockRoundTripper] instead.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newSpotifyTestService(t *testing.T, rt http.RoundTripper) *SpotifyService {
	t.Helper()
	svc, err := NewSpotifyService(shared.SpotifyConfig{
		ClientID:     "client",
		ClientSecret: "secret",
	})
	if err != nil {
		t.Fatalf("NewSpotifyService() error = %v", err)
	}
	svc.token = &oauth2.Token{AccessToken: "test-token"}
	svc.httpClient = &http.Client{Transport: rt}
	return svc
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewSpotifyService(shared.SpotifyConfig{})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("installs configured access token", func(t *testing.T) {
		svc, err := NewSpotifyService(shared.SpotifyConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			AccessToken:  "tok",
		})
		if err != nil {
			t.Fatalf("NewSpotifyService() error = %v", err)
		}
		if svc.token == nil || svc.token.AccessToken != "tok" {
			t.Errorf("token = %v, want tok", svc.token)
		}
	})
}

func TestSpotifyServiceUnauthenticated(t *testing.T) {
	svc, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "client", ClientSecret: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.GetPlaylists(context.Background())
	if !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

func TestSpotifyServicePlaylistTracks(t *testing.T) {
	t.Run("maps a page and advances the cursor", func(t *testing.T) {
		svc := newSpotifyTestService(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if !strings.Contains(r.URL.Path, "/playlists/sp1/tracks") {
				t.Errorf("path = %q", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("Authorization = %q", got)
			}
			return jsonResponse(200, `{
				"items": [
					{"track": {"id": "t1", "name": "Song One", "artists": [{"name": "Artist A"}]}},
					{"track": null},
					{"track": {"id": "t2", "name": "Song Two", "artists": [{"name": "Artist B"}, {"name": "Artist C"}]}}
				],
				"total": 60,
				"next": "https://api.spotify.com/v1/playlists/sp1/tracks?offset=50"
			}`), nil
		}))

		page, err := svc.PlaylistTracks(context.Background(), "sp1", "")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}

		if len(page.Items) != 3 {
			t.Fatalf("items = %d, want 3", len(page.Items))
		}
		if page.Items[0].Name != "Song One" {
			t.Errorf("Items[0] = %+v", page.Items[0])
		}
		if page.Items[1].Name != "" {
			t.Error("null track should map to a zero-value item")
		}
		if got := page.Items[2].SearchQuery(); got != "Song Two Artist B Artist C" {
			t.Errorf("SearchQuery() = %q", got)
		}
		if page.NextCursor != "50" {
			t.Errorf("NextCursor = %q, want 50", page.NextCursor)
		}
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		svc := newSpotifyTestService(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if got := r.URL.Query().Get("offset"); got != "50" {
				t.Errorf("offset = %q, want 50", got)
			}
			return jsonResponse(200, `{"items": [], "next": null}`), nil
		}))

		page, err := svc.PlaylistTracks(context.Background(), "sp1", "50")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}
		if page.NextCursor != "" {
			t.Errorf("NextCursor = %q, want empty", page.NextCursor)
		}
	})

	t.Run("rejects a malformed cursor", func(t *testing.T) {
		svc := newSpotifyTestService(t, tu.NewMockRoundTripper(nil, errors.New("no request should be made")))

		_, err := svc.PlaylistTracks(context.Background(), "sp1", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("api failure", func(t *testing.T) {
		svc := newSpotifyTestService(t, tu.NewMockRoundTripper(jsonResponse(500, `{"error": "oops"}`), nil))

		_, err := svc.PlaylistTracks(context.Background(), "sp1", "")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("error = %v, want ErrAPIRequest", err)
		}
	})

	t.Run("unreadable body", func(t *testing.T) {
		svc := newSpotifyTestService(t, tu.NewMockRoundTripper(&http.Response{
			StatusCode: 200,
			Body:       &tu.FCloser{},
		}, nil))

		_, err := svc.PlaylistTracks(context.Background(), "sp1", "")
		if err == nil || !strings.Contains(err.Error(), "failed to decode response") {
			t.Errorf("error = %v, want a decode failure", err)
		}
	})
}

func TestSpotifyServiceSavedTracks(t *testing.T) {
	svc := newSpotifyTestService(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if !strings.Contains(r.URL.Path, "/me/tracks") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("offset"); got != "25" {
			t.Errorf("offset = %q, want 25", got)
		}
		return jsonResponse(200, `{
			"items": [{"track": {"id": "t1", "name": "Liked One", "artists": [{"name": "A"}]}}],
			"next": "https://api.spotify.com/v1/me/tracks?offset=75"
		}`), nil
	}))

	page, err := svc.SavedTracks(context.Background(), 25)
	if err != nil {
		t.Fatalf("SavedTracks() error = %v", err)
	}

	if len(page.Items) != 1 || page.Items[0].Name != "Liked One" {
		t.Errorf("Items = %+v", page.Items)
	}
	if !page.HasMore {
		t.Error("HasMore should be true while next is set")
	}
}

func TestSpotifyServiceGetPlaylists(t *testing.T) {
	calls := 0
	svc := newSpotifyTestService(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return jsonResponse(200, `{
				"items": [{"id": "p1", "name": "First", "tracks": {"total": 10}}],
				"next": "https://api.spotify.com/v1/me/playlists?offset=50"
			}`), nil
		}
		return jsonResponse(200, `{
			"items": [{"id": "p2", "name": "Second", "tracks": {"total": 4}}],
			"next": null
		}`), nil
	}))

	playlists, err := svc.GetPlaylists(context.Background())
	if err != nil {
		t.Fatalf("GetPlaylists() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(playlists) != 2 {
		t.Fatalf("playlists = %d, want 2", len(playlists))
	}
	if playlists[0].ID != "p1" || playlists[0].TrackCount != 10 {
		t.Errorf("playlists[0] = %+v", playlists[0])
	}
	if playlists[1].Name != "Second" {
		t.Errorf("playlists[1] = %+v", playlists[1])
	}
}

func TestSpotifyServiceAuthenticate(t *testing.T) {
	svc, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "client", ClientSecret: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("missing credentials", func(t *testing.T) {
		err := svc.Authenticate(context.Background(), map[string]string{})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("access token", func(t *testing.T) {
		if err := svc.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if svc.token == nil || svc.token.AccessToken != "tok" {
			t.Errorf("token = %v", svc.token)
		}
	})
}

func TestSpotifyServiceGetAuthURL(t *testing.T) {
	svc, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "client", ClientSecret: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	authURL := svc.GetAuthURL("state123")
	for _, want := range []string{"accounts.spotify.com", "client_id=client", "state=state123"} {
		if !strings.Contains(authURL, want) {
			t.Errorf("auth URL %q missing %q", authURL, want)
		}
	}
}

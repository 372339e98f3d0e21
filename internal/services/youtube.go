// YouTube Music API [DestinationCatalog] implementation
//
// Communicates with a FastAPI proxy server wrapping the ytmusicapi Python
// library for YouTube Music operations.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/shared"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeService implements [DestinationCatalog] for YouTube Music via proxy.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube Music service instance.
//
// The auth file path is injected up front; there is no ambient global state.
func NewYouTubeService(conf shared.YouTubeConfig) *YouTubeService {
	baseURL := conf.ProxyURL
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		authFile:   conf.AuthFile,
		httpClient: http.DefaultClient,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// doRequest performs a request against the proxy and decodes the JSON response.
//
// Non-2xx responses are classified: 404 wraps shared.ErrPlaylistNotFound for
// playlist endpoints, 403/429 with a quota reason wraps shared.ErrQuotaExceeded,
// everything else wraps shared.ErrAPIRequest.
func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := y.baseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return y.classifyError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyError maps a proxy error response into the shared error taxonomy.
func (y *YouTubeService) classifyError(resp *http.Response) error {
	var errResp struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		detail = errResp.Detail
	}

	if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(detail, "quotaExceeded") {
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrQuotaExceeded, detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrQuotaExceeded, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	}

	if detail != "" {
		return fmt.Errorf("%w (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, detail)
	}
	return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
}

// GetPlaylist retrieves a specific playlist by ID without tracks.
//
// Calls GET /api/playlists/{id} on the proxy.
func (y *YouTubeService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	var ytPlaylist struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Privacy     string `json:"privacy"`
		TrackCount  int    `json:"trackCount"`
	}

	endpoint := fmt.Sprintf("/api/playlists/%s", playlistID)
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylist); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          ytPlaylist.ID,
		Name:        ytPlaylist.Title,
		Description: ytPlaylist.Description,
		TrackCount:  ytPlaylist.TrackCount,
		Public:      ytPlaylist.Privacy == "PUBLIC",
	}, nil
}

// CreatePlaylist creates a new playlist on YouTube Music.
//
// Calls POST /api/playlists on the proxy.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error) {
	createReq := struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PrivacyStatus string `json:"privacy_status"`
	}{
		Title:         title,
		Description:   description,
		PrivacyStatus: "PRIVATE",
	}
	if public {
		createReq.PrivacyStatus = "PUBLIC"
	}

	var createResp struct {
		PlaylistID string `json:"playlist_id"`
	}

	if err := y.doRequest(ctx, http.MethodPost, "/api/playlists", createReq, &createResp); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return &models.Playlist{
		ID:          createResp.PlaylistID,
		Name:        title,
		Description: description,
		Public:      public,
	}, nil
}

// Search returns up to limit matches for the query, best first.
//
// Calls GET /api/search?q={query}&filter=songs&limit={limit} on the proxy.
// An empty result set is a miss, not an error.
func (y *YouTubeService) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := fmt.Sprintf("/api/search?q=%s&filter=songs&limit=%d", url.QueryEscape(query), limit)

	var results []struct {
		VideoID string          `json:"videoId"`
		Title   string          `json:"title"`
		Artists []YouTubeArtist `json:"artists"`
	}

	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}

	hits := make([]models.SearchHit, 0, len(results))
	for _, result := range results {
		hit := models.SearchHit{
			MediaID: result.VideoID,
			Title:   result.Title,
		}
		if len(result.Artists) > 0 {
			hit.Artist = result.Artists[0].Name
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// AddPlaylistItem appends a single media item to a playlist.
//
// Calls POST /api/playlists/{id}/items on the proxy.
func (y *YouTubeService) AddPlaylistItem(ctx context.Context, playlistID, mediaID string) error {
	addReq := struct {
		VideoIDs []string `json:"video_ids"`
	}{
		VideoIDs: []string{mediaID},
	}

	endpoint := fmt.Sprintf("/api/playlists/%s/items", playlistID)
	if err := y.doRequest(ctx, http.MethodPost, endpoint, addReq, nil); err != nil {
		// The playlist was already resolved, so a 404 here is a transient
		// proxy inconsistency and stays retryable.
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			return fmt.Errorf("%w: playlist %s not found while adding item", shared.ErrAPIRequest, playlistID)
		}
		return fmt.Errorf("failed to add item to playlist: %w", err)
	}

	return nil
}

// YouTube Data API v3 [SourceService] implementation
//
// API reference: https://developers.google.com/youtube/v3/docs
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/moodsplit/moodsplit/internal/models"
	"github.com/moodsplit/moodsplit/internal/shared"
	"golang.org/x/oauth2"
)

const defaultYTBaseURL string = "https://www.googleapis.com/youtube/v3"

// pageSize is the maximum page size the playlistItems endpoint allows.
const pageSize = 50

// youtubeResourceID identifies a video within playlist item snippets.
type youtubeResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// youtubeSnippet is the snippet part of playlistItems resources.
type youtubeSnippet struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	PlaylistID  string            `json:"playlistId,omitempty"`
	ResourceID  youtubeResourceID `json:"resourceId"`
}

type youtubePlaylistItem struct {
	ID      string         `json:"id"`
	Snippet youtubeSnippet `json:"snippet"`
}

type youtubePlaylistItemsResponse struct {
	NextPageToken string                `json:"nextPageToken"`
	Items         []youtubePlaylistItem `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements [SourceService] against the YouTube Data API v3.
//
// Read operations authenticate with an API key; playlist creation and item
// insertion require an OAuth bearer token.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	privacy    string
	httpClient *http.Client
	authClient *http.Client
}

// NewYouTubeService creates a new YouTube service instance.
func NewYouTubeService(baseURL string) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		privacy:    "private",
		httpClient: http.DefaultClient,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Authenticate stores credentials for subsequent requests.
//
// Expects credentials["api_key"] for read access. credentials["oauth_token"] is
// optional and enables playlist creation; credentials["privacy"] overrides the
// privacy status applied to created playlists.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	apiKey, ok := credentials["api_key"]
	if !ok || apiKey == "" {
		return fmt.Errorf("%w: missing api_key in credentials", shared.ErrMissingCredentials)
	}
	y.apiKey = apiKey

	if token := credentials["oauth_token"]; token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		y.authClient = oauth2.NewClient(ctx, src)
	}

	if privacy := credentials["privacy"]; privacy != "" {
		y.privacy = privacy
	}

	return nil
}

// apiError decodes the structured error body YouTube returns on failure.
func apiError(resp *http.Response) string {
	var errResp youtubeErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, errResp.Error.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// PlaylistItems retrieves a single page of playlist items.
//
// Calls GET /playlistItems with part=snippet and the maximum page size.
// An empty pageToken requests the first page; the returned page's
// NextPageToken is empty on the final page.
func (y *YouTubeService) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*models.SongPage, error) {
	if y.apiKey == "" {
		return nil, fmt.Errorf("%w: Authenticate must be called first", shared.ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", fmt.Sprintf("%d", pageSize))
	params.Set("playlistId", playlistID)
	params.Set("key", y.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	apiURL := fmt.Sprintf("%s/playlistItems?%s", y.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceUnavailable, apiError(resp))
	}

	var ytResp youtubePlaylistItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ytResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrSourceUnavailable, err)
	}

	page := &models.SongPage{
		Items:         make([]models.SongInfo, len(ytResp.Items)),
		NextPageToken: ytResp.NextPageToken,
	}
	for i, item := range ytResp.Items {
		page.Items[i] = models.SongInfo{
			VideoID:     item.Snippet.ResourceID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		}
	}

	return page, nil
}

// doAuthorized performs an OAuth-authenticated POST with a JSON body.
func (y *YouTubeService) doAuthorized(ctx context.Context, endpoint string, body, result any) (int, string, error) {
	if y.authClient == nil {
		return 0, "", fmt.Errorf("%w: oauth_token required for write operations", shared.ErrMissingCredentials)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := y.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.authClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, apiError(resp), nil
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, "", nil
}

// CreatePlaylist creates a new playlist named after the category and returns its identifier.
//
// Calls POST /playlists with part=snippet,status.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title string) (string, error) {
	createReq := struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
		Status struct {
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
	}{}
	createReq.Snippet.Title = title
	createReq.Snippet.Description = fmt.Sprintf("Created by moodsplit: %s", title)
	createReq.Status.PrivacyStatus = y.privacy

	var createResp struct {
		ID string `json:"id"`
	}

	status, apiErr, err := y.doAuthorized(ctx, "/playlists?part=snippet%2Cstatus", createReq, &createResp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrPlaylistCreate, err)
	}
	if apiErr != "" {
		return "", fmt.Errorf("%w: %s", shared.ErrPlaylistCreate, apiErr)
	}
	if createResp.ID == "" {
		return "", fmt.Errorf("%w: response missing playlist id (status %d)", shared.ErrPlaylistCreate, status)
	}

	return createResp.ID, nil
}

// InsertItem appends a single video to the given playlist.
//
// Calls POST /playlistItems with part=snippet, strictly one video per request.
func (y *YouTubeService) InsertItem(ctx context.Context, playlistID, videoID string) error {
	insertReq := struct {
		Snippet youtubeSnippet `json:"snippet"`
	}{
		Snippet: youtubeSnippet{
			PlaylistID: playlistID,
			ResourceID: youtubeResourceID{
				Kind:    "youtube#video",
				VideoID: videoID,
			},
		},
	}

	_, apiErr, err := y.doAuthorized(ctx, "/playlistItems?part=snippet", insertReq, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaylistInsert, err)
	}
	if apiErr != "" {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistInsert, apiErr)
	}

	return nil
}

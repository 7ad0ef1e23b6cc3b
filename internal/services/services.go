// package services defines interfaces for the two remote collaborators
//
// YouTube Data API (source provider), Gemini (categorization oracle)
package services

import (
	"context"

	"github.com/moodsplit/moodsplit/internal/models"
)

// SourceService defines the interface for the playlist source provider that owns playlists and their items.
type SourceService interface {
	// Authenticate stores credentials for subsequent requests.
	// Returns an error if required credentials are missing.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// PlaylistItems retrieves a single page of items for the given playlist.
	// An empty pageToken requests the first page.
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (*models.SongPage, error)

	// CreatePlaylist creates a new playlist with the given title and returns its identifier.
	CreatePlaylist(ctx context.Context, title string) (string, error)

	// InsertItem appends a single video to the given playlist.
	InsertItem(ctx context.Context, playlistID, videoID string) error

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}

// OracleService defines the interface for the categorization oracle that assigns
// category labels to songs.
type OracleService interface {
	// Authenticate stores credentials for subsequent requests.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SuggestCategories asks the oracle for exactly count category labels that
	// best partition the sample.
	SuggestCategories(ctx context.Context, samples []models.SongInfo, count int) ([]string, error)

	// ClassifyBatch assigns every item in the batch to exactly one of the
	// approved categories. The response is validated against a fixed structural
	// schema; nothing unvalidated crosses this boundary.
	ClassifyBatch(ctx context.Context, items []models.SongInfo, categories []string) ([]models.Classification, error)

	// Name returns the name of the service (e.g., "Gemini")
	Name() string
}

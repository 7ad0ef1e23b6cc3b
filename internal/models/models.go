// package models defines the data model for the playlist splitting pipeline
package models

// SongInfo represents a single playlist item as fetched from the source provider.
// Immutable once fetched.
type SongInfo struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SongPage represents one page of playlist items from the source provider.
// An empty NextPageToken signals the final page.
type SongPage struct {
	Items         []SongInfo `json:"items"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// Classification assigns one song to one approved category.
// Category must be a member of the run's approved category set.
type Classification struct {
	VideoID  string `json:"videoId"`
	Category string `json:"category"`
}

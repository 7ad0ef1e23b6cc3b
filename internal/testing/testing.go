// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moodsplit/moodsplit/internal/models"
)

// MockSource is a configurable test double for [services.SourceService].
type MockSource struct {
	Songs       []models.SongInfo
	ItemsErr    error
	CreateErr   error
	InsertErr   error
	CreateCalls []string
	InsertCalls map[string][]string
}

func (m *MockSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockSource) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*models.SongPage, error) {
	if m.ItemsErr != nil {
		return nil, m.ItemsErr
	}
	return &models.SongPage{Items: m.Songs}, nil
}

func (m *MockSource) CreatePlaylist(ctx context.Context, title string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.CreateCalls = append(m.CreateCalls, title)
	return fmt.Sprintf("pl-%s", title), nil
}

func (m *MockSource) InsertItem(ctx context.Context, playlistID, videoID string) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	if m.InsertCalls == nil {
		m.InsertCalls = map[string][]string{}
	}
	m.InsertCalls[playlistID] = append(m.InsertCalls[playlistID], videoID)
	return nil
}

func (m *MockSource) Name() string { return "mock-source" }

// MockOracle is a configurable test double for [services.OracleService].
//
// When ClassifyFn is nil every song lands in the first category.
type MockOracle struct {
	Categories []string
	SuggestErr error
	ClassifyFn func(items []models.SongInfo, categories []string) ([]models.Classification, error)
}

func (m *MockOracle) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockOracle) SuggestCategories(ctx context.Context, samples []models.SongInfo, count int) ([]string, error) {
	if m.SuggestErr != nil {
		return nil, m.SuggestErr
	}
	return m.Categories, nil
}

func (m *MockOracle) ClassifyBatch(ctx context.Context, items []models.SongInfo, categories []string) ([]models.Classification, error) {
	if m.ClassifyFn != nil {
		return m.ClassifyFn(items, categories)
	}
	classified := make([]models.Classification, len(items))
	for i, item := range items {
		classified[i] = models.Classification{VideoID: item.VideoID, Category: categories[0]}
	}
	return classified, nil
}

func (m *MockOracle) Name() string { return "mock-oracle" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

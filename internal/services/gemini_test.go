package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moodsplit/moodsplit/internal/models"
	"github.com/moodsplit/moodsplit/internal/shared"
)

// geminiStub returns a test server that responds to every generateContent call
// with the given text as the sole candidate.
func geminiStub(t *testing.T, candidateText string, requests *[]geminiRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %s, want test-key", r.URL.Query().Get("key"))
		}

		if requests != nil {
			var req geminiRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			*requests = append(*requests, req)
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": candidateText}}}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("failed to encode response: %v", err)
		}
	}))
}

func authedGemini(t *testing.T, baseURL string) *GeminiService {
	t.Helper()

	svc := NewGeminiService(baseURL)
	if err := svc.Authenticate(context.Background(), map[string]string{"api_key": "test-key"}); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	return svc
}

func sampleSongs(n int) []models.SongInfo {
	songs := make([]models.SongInfo, n)
	for i := range songs {
		songs[i] = models.SongInfo{
			VideoID:     fmt.Sprintf("vid%d", i),
			Title:       fmt.Sprintf("Song %d", i),
			Description: strings.Repeat("x", 300),
		}
	}
	return songs
}

func TestGeminiService_Authenticate(t *testing.T) {
	svc := NewGeminiService("")

	if err := svc.Authenticate(context.Background(), map[string]string{}); !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}

	if err := svc.Authenticate(context.Background(), map[string]string{"api_key": "k", "model": "gemini-2.5-pro"}); err != nil {
		t.Errorf("Authenticate() error = %v", err)
	}
	if svc.model != "gemini-2.5-pro" {
		t.Errorf("model = %s, want gemini-2.5-pro", svc.model)
	}
}

func TestGeminiService_SuggestCategories(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var requests []geminiRequest
		server := geminiStub(t, `{"categories": ["High Energy", "Chill Vibes", "Melancholy"]}`, &requests)
		defer server.Close()

		svc := authedGemini(t, server.URL)

		categories, err := svc.SuggestCategories(context.Background(), sampleSongs(10), 3)
		if err != nil {
			t.Fatalf("SuggestCategories() error = %v", err)
		}

		want := []string{"High Energy", "Chill Vibes", "Melancholy"}
		for i := range want {
			if categories[i] != want[i] {
				t.Errorf("categories = %v, want %v (order must be preserved)", categories, want)
			}
		}

		if len(requests) != 1 {
			t.Fatalf("expected 1 request, got %d", len(requests))
		}
		req := requests[0]
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("responseMimeType = %s", req.GenerationConfig.ResponseMIMEType)
		}
		if req.GenerationConfig.ResponseSchema == nil {
			t.Error("expected a response schema")
		}

		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "vid0") {
			t.Error("prompt should contain sample video IDs")
		}
		// Long descriptions are truncated before prompting.
		if strings.Contains(prompt, strings.Repeat("x", 150)) {
			t.Error("prompt should truncate long descriptions")
		}
	})

	t.Run("empty sample refuses to call the oracle", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		svc := authedGemini(t, server.URL)

		_, err := svc.SuggestCategories(context.Background(), nil, 3)
		if !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Fatalf("expected ErrEmptyPlaylist, got %v", err)
		}
		if calls != 0 {
			t.Errorf("oracle called %d times for an empty sample", calls)
		}
	})

	schemaCases := []struct {
		name string
		text string
	}{
		{name: "wrong count", text: `{"categories": ["A", "B"]}`},
		{name: "duplicate labels", text: `{"categories": ["A", "A", "B"]}`},
		{name: "empty label", text: `{"categories": ["A", " ", "B"]}`},
		{name: "not json", text: `three categories: A, B, C`},
		{name: "wrong types", text: `{"categories": [1, 2, 3]}`},
	}

	for _, tt := range schemaCases {
		t.Run(tt.name, func(t *testing.T) {
			server := geminiStub(t, tt.text, nil)
			defer server.Close()

			svc := authedGemini(t, server.URL)

			_, err := svc.SuggestCategories(context.Background(), sampleSongs(10), 3)
			if !errors.Is(err, shared.ErrClassificationSchema) {
				t.Fatalf("expected ErrClassificationSchema, got %v", err)
			}
		})
	}
}

func TestGeminiService_ClassifyBatch(t *testing.T) {
	categories := []string{"Chill", "Hype"}

	t.Run("success", func(t *testing.T) {
		var requests []geminiRequest
		server := geminiStub(t, `{"results": [
			{"videoId": "vid0", "category": "Chill"},
			{"videoId": "vid1", "category": "Hype"}
		]}`, &requests)
		defer server.Close()

		svc := authedGemini(t, server.URL)

		results, err := svc.ClassifyBatch(context.Background(), sampleSongs(2), categories)
		if err != nil {
			t.Fatalf("ClassifyBatch() error = %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].VideoID != "vid0" || results[0].Category != "Chill" {
			t.Errorf("first result = %+v", results[0])
		}

		prompt := requests[0].Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "Chill, Hype") {
			t.Error("prompt should list the approved categories")
		}
	})

	t.Run("empty batch short-circuits", func(t *testing.T) {
		svc := authedGemini(t, "http://unused")

		results, err := svc.ClassifyBatch(context.Background(), nil, categories)
		if err != nil {
			t.Fatalf("ClassifyBatch() error = %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected empty results, got %v", results)
		}
	})

	t.Run("no approved categories", func(t *testing.T) {
		svc := authedGemini(t, "http://unused")

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(1), nil); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := geminiStub(t, `{"results": "not an array"}`, nil)
		defer server.Close()

		svc := authedGemini(t, server.URL)

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(2), categories); !errors.Is(err, shared.ErrClassificationSchema) {
			t.Fatalf("expected ErrClassificationSchema, got %v", err)
		}
	})

	t.Run("entry missing fields", func(t *testing.T) {
		server := geminiStub(t, `{"results": [{"videoId": "vid0"}]}`, nil)
		defer server.Close()

		svc := authedGemini(t, server.URL)

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(1), categories); !errors.Is(err, shared.ErrClassificationSchema) {
			t.Fatalf("expected ErrClassificationSchema, got %v", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"code": 429, "message": "rate limited"}}`)
		}))
		defer server.Close()

		svc := authedGemini(t, server.URL)

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(1), categories); !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates": []}`)
		}))
		defer server.Close()

		svc := authedGemini(t, server.URL)

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(1), categories); !errors.Is(err, shared.ErrClassificationSchema) {
			t.Fatalf("expected ErrClassificationSchema, got %v", err)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := NewGeminiService("")

		if _, err := svc.ClassifyBatch(context.Background(), sampleSongs(1), categories); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

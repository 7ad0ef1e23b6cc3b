// Gemini API [OracleService] implementation
//
// Uses generateContent with a JSON response schema so the model output can be
// decoded into typed results. Responses that fail schema validation are never
// coerced; they surface as [shared.ErrClassificationSchema].
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodsplit/moodsplit/internal/models"
	"github.com/moodsplit/moodsplit/internal/shared"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"

	// descriptionLimit caps how much of a song description goes into the prompt.
	descriptionLimit = 100
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiService implements [OracleService] against the Gemini API.
type GeminiService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(baseURL string) *GeminiService {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	return &GeminiService{
		baseURL:    baseURL,
		model:      defaultGeminiModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the service name.
func (g *GeminiService) Name() string {
	return "Gemini"
}

// Authenticate stores the API key and optional model override for subsequent requests.
//
// Expects credentials["api_key"]; credentials["model"] overrides the default model.
func (g *GeminiService) Authenticate(ctx context.Context, credentials map[string]string) error {
	apiKey, ok := credentials["api_key"]
	if !ok || apiKey == "" {
		return fmt.Errorf("%w: missing api_key in credentials", shared.ErrMissingCredentials)
	}
	g.apiKey = apiKey

	if model := credentials["model"]; model != "" {
		g.model = model
	}

	return nil
}

// generate sends a generateContent request with a JSON response schema and
// returns the raw JSON text of the first candidate.
func (g *GeminiService) generate(ctx context.Context, prompt string, schema map[string]any) ([]byte, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: Authenticate must be called first", shared.ErrMissingCredentials)
	}

	genReq := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrClassificationSchema, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if genResp.Error != nil {
			return nil, fmt.Errorf("%w: gemini API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, genResp.Error.Message)
		}
		return nil, fmt.Errorf("%w: gemini API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: response has no candidates", shared.ErrClassificationSchema)
	}

	return []byte(genResp.Candidates[0].Content.Parts[0].Text), nil
}

// promptLines formats songs for the model, one line per song with the
// description truncated.
func promptLines(songs []models.SongInfo) string {
	var sb strings.Builder
	for _, song := range songs {
		fmt.Fprintf(&sb, "ID: %s | Title: %s | Desc: %s\n",
			song.VideoID, song.Title, shared.Truncate(song.Description, descriptionLimit))
	}
	return sb.String()
}

// SuggestCategories asks the oracle for exactly count category labels that best partition the sample.
//
// The response must contain exactly count distinct non-empty labels, in the
// order the oracle returned them.
func (g *GeminiService) SuggestCategories(ctx context.Context, samples []models.SongInfo, count int) ([]string, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no songs to sample", shared.ErrEmptyPlaylist)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"categories": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"categories"},
	}

	prompt := fmt.Sprintf(`You are a music categorization assistant.
Below is a sample of songs from a YouTube playlist. Suggest exactly %d short (1-3 word) mood or genre category labels that best partition the full playlist.

Here are the songs:
%s`, count, promptLines(samples))

	raw, err := g.generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}

	var result struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrClassificationSchema, err)
	}

	if len(result.Categories) != count {
		return nil, fmt.Errorf("%w: expected %d categories, got %d", shared.ErrClassificationSchema, count, len(result.Categories))
	}

	seen := make(map[string]bool, count)
	for _, cat := range result.Categories {
		if strings.TrimSpace(cat) == "" {
			return nil, fmt.Errorf("%w: empty category label", shared.ErrClassificationSchema)
		}
		if seen[cat] {
			return nil, fmt.Errorf("%w: duplicate category label '%s'", shared.ErrClassificationSchema, cat)
		}
		seen[cat] = true
	}

	return result.Categories, nil
}

// ClassifyBatch assigns every item in the batch to exactly one approved category.
//
// The decoded response must contain a videoId and category for every entry;
// set equality with the submitted batch is enforced by the caller, which owns
// batch bookkeeping.
func (g *GeminiService) ClassifyBatch(ctx context.Context, items []models.SongInfo, categories []string) ([]models.Classification, error) {
	if len(items) == 0 {
		return []models.Classification{}, nil
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no approved categories", shared.ErrInvalidArgument)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"videoId":  map[string]any{"type": "string"},
						"category": map[string]any{"type": "string", "enum": categories},
					},
					"required": []string{"videoId", "category"},
				},
			},
		},
		"required": []string{"results"},
	}

	prompt := fmt.Sprintf(`You are a music categorization assistant.
I have a list of YouTube videos (songs). Categorize each one into ONLY ONE of the following categories: [%s].
If a song doesn't perfectly fit, make your best guess based on the title and description.

Here are the songs:
%s`, strings.Join(categories, ", "), promptLines(items))

	raw, err := g.generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []models.Classification `json:"results"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrClassificationSchema, err)
	}

	for _, cls := range result.Results {
		if cls.VideoID == "" || cls.Category == "" {
			return nil, fmt.Errorf("%w: entry missing videoId or category", shared.ErrClassificationSchema)
		}
	}

	return result.Results, nil
}

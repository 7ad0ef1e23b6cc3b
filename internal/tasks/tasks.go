// package tasks implements the classification and fan-out pipeline.
//
// The core abstraction is SplitEngine, which orchestrates reading a source
// playlist, classifying its songs through the oracle, and materializing one
// destination playlist per category. Operations emit progress updates via
// channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodsplit/moodsplit/internal/models"
	"github.com/moodsplit/moodsplit/internal/services"
	"github.com/moodsplit/moodsplit/internal/shared"
)

const (
	defaultBatchSize       = 50
	defaultSampleSize      = 10
	defaultSuggestionCount = 3
	defaultBatchDelay      = 1000 * time.Millisecond
	defaultInsertDelay     = 500 * time.Millisecond
)

// SplitRequest describes one end-to-end split invocation.
type SplitRequest struct {
	PlaylistRef      string   // Raw playlist ID or URL
	CustomCategories []string // Optional; when empty the oracle suggests categories
}

// InsertFailure records a single failed item insertion.
type InsertFailure struct {
	VideoID string `json:"videoId"`
	Reason  string `json:"reason"`
}

// CategoryOutcome records the materialization result for one category.
type CategoryOutcome struct {
	Category       string          `json:"category"`
	PlaylistID     string          `json:"playlistId,omitempty"`
	Created        bool            `json:"created"`
	CreateError    string          `json:"createError,omitempty"`
	InsertedCount  int             `json:"insertedCount"`
	InsertFailures []InsertFailure `json:"insertFailures,omitempty"`
}

// Complete reports whether the category was fully materialized.
func (o CategoryOutcome) Complete() bool {
	return o.Created && len(o.InsertFailures) == 0
}

// SplitResult contains all data from a full split run. The run completes even
// when individual categories or insertions fail; Outcomes enumerates exactly
// which did, so a caller can retry just the failed subset.
type SplitResult struct {
	RunID      string              `json:"runId"`
	PlaylistID string              `json:"playlistId"`
	TotalSongs int                 `json:"totalSongs"`
	Categories []string            `json:"categories"`
	Suggested  bool                `json:"suggested"` // Categories came from the oracle
	BatchCount int                 `json:"batchCount"`
	Groups     map[string][]string `json:"groups"`
	Outcomes   []CategoryOutcome   `json:"outcomes"`
}

// CreatedCount returns the number of destination playlists created.
func (r *SplitResult) CreatedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Created {
			n++
		}
	}
	return n
}

// InsertedCount returns the total number of successful item insertions.
func (r *SplitResult) InsertedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.InsertedCount
	}
	return n
}

// SplitEngine defines operations for splitting a playlist by category.
type SplitEngine interface {
	// Run performs a full split: extract → read → (suggest) → classify → group → materialize.
	Run(ctx context.Context, progress chan<- ProgressUpdate, req SplitRequest) (*SplitResult, error)

	// Suggest fetches the sample prefix and asks the oracle for category labels
	// without classifying or materializing anything.
	Suggest(ctx context.Context, progress chan<- ProgressUpdate, playlistRef string) ([]string, error)

	// Items reads the full ordered song list for a playlist.
	Items(ctx context.Context, progress chan<- ProgressUpdate, playlistRef string) ([]models.SongInfo, error)
}

// SplitterOpts contains configuration for a PlaylistSplitter.
type SplitterOpts struct {
	BatchSize       int   // Songs per classification batch (default 50)
	SampleSize      int   // Songs sampled for suggestion (default 10)
	SuggestionCount int   // Categories requested from the oracle (default 3)
	BatchPacer      Pacer // Pacing between classification batches (default 1000ms)
	InsertPacer     Pacer // Pacing between item insertions (default 500ms)
}

// PlaylistSplitter implements SplitEngine.
// Contains dependencies on the source provider and categorization oracle.
type PlaylistSplitter struct {
	source          services.SourceService
	oracle          services.OracleService
	batchSize       int
	sampleSize      int
	suggestionCount int
	batchPacer      Pacer
	insertPacer     Pacer
}

// NewPlaylistSplitter creates a new PlaylistSplitter with the provided services.
func NewPlaylistSplitter(source services.SourceService, oracle services.OracleService, opts SplitterOpts) *PlaylistSplitter {
	if opts.BatchSize <= 0 || opts.BatchSize > defaultBatchSize {
		opts.BatchSize = defaultBatchSize
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = defaultSampleSize
	}
	if opts.SuggestionCount <= 0 {
		opts.SuggestionCount = defaultSuggestionCount
	}
	if opts.BatchPacer == nil {
		opts.BatchPacer = NewPacer(defaultBatchDelay)
	}
	if opts.InsertPacer == nil {
		opts.InsertPacer = NewPacer(defaultInsertDelay)
	}

	return &PlaylistSplitter{
		source:          source,
		oracle:          oracle,
		batchSize:       opts.BatchSize,
		sampleSize:      opts.SampleSize,
		suggestionCount: opts.SuggestionCount,
		batchPacer:      opts.BatchPacer,
		insertPacer:     opts.InsertPacer,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistSplitter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// fail reports a fatal run error on the progress channel and wraps it for the caller.
func (e *PlaylistSplitter) fail(progress chan<- ProgressUpdate, phase Phase, err error) error {
	e.sendProgress(progress, failedUpdate(phase, err))
	return err
}

// readAll paginates the source provider until it signals no further page,
// concatenating items in page order. A failed page request aborts the whole
// read rather than returning a truncated list.
func (e *PlaylistSplitter) readAll(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) ([]models.SongInfo, error) {
	var songs []models.SongInfo
	pageToken := ""
	pageNum := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageNum++
		e.sendProgress(progress, readPageUpdate(pageNum, len(songs)))

		page, err := e.source.PlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}

		songs = append(songs, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	e.sendProgress(progress, readDoneUpdate(len(songs)))
	return songs, nil
}

// resolveCategories returns the approved category set for the run: the cleaned
// custom categories when supplied, otherwise a one-time oracle suggestion over
// the sample prefix. The returned bool reports whether the oracle was used.
func (e *PlaylistSplitter) resolveCategories(ctx context.Context, progress chan<- ProgressUpdate, songs []models.SongInfo, custom []string) ([]string, bool, error) {
	if cleaned := CleanCategories(custom); len(cleaned) > 0 {
		return cleaned, false, nil
	}

	if len(songs) == 0 {
		return nil, false, fmt.Errorf("%w: cannot suggest categories", shared.ErrEmptyPlaylist)
	}

	sample := songs
	if len(sample) > e.sampleSize {
		sample = sample[:e.sampleSize]
	}

	e.sendProgress(progress, suggestingUpdate(len(sample)))

	categories, err := e.oracle.SuggestCategories(ctx, sample, e.suggestionCount)
	if err != nil {
		return nil, false, err
	}

	e.sendProgress(progress, suggestedUpdate(categories))
	return categories, true, nil
}

// classifyAll partitions songs into batches and classifies them strictly in
// sequence, acquiring the batch pacer before each request. The concatenated
// result preserves batch-then-within-batch order.
func (e *PlaylistSplitter) classifyAll(ctx context.Context, progress chan<- ProgressUpdate, songs []models.SongInfo, categories []string) ([]models.Classification, error) {
	batches := partitionBatches(songs, e.batchSize)
	classifications := make([]models.Classification, 0, len(songs))

	for i, batch := range batches {
		if err := e.batchPacer.Wait(ctx); err != nil {
			return nil, err
		}

		e.sendProgress(progress, classifyBatchUpdate(i+1, len(batches)))

		results, err := e.oracle.ClassifyBatch(ctx, batch, categories)
		if err != nil {
			return nil, err
		}

		if err := validateBatch(batch, results, categories); err != nil {
			return nil, err
		}

		classifications = append(classifications, results...)
	}

	return classifications, nil
}

// materialize creates one destination playlist per non-empty category group
// and inserts its items one at a time, acquiring the insert pacer before each
// insertion. A create failure aborts only that category; an insert failure is
// recorded and iteration continues.
func (e *PlaylistSplitter) materialize(ctx context.Context, progress chan<- ProgressUpdate, order []string, groups map[string][]string) ([]CategoryOutcome, error) {
	outcomes := make([]CategoryOutcome, 0, len(order))

	for i, category := range order {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		videoIDs := groups[category]
		outcome := CategoryOutcome{Category: category}

		e.sendProgress(progress, createPlaylistUpdate(category, i+1, len(order)))

		playlistID, err := e.source.CreatePlaylist(ctx, category)
		if err != nil {
			outcome.CreateError = err.Error()
			outcomes = append(outcomes, outcome)
			e.sendProgress(progress, createFailedUpdate(category, i+1, len(order), err))
			continue
		}

		outcome.Created = true
		outcome.PlaylistID = playlistID

		for _, videoID := range videoIDs {
			if err := e.insertPacer.Wait(ctx); err != nil {
				outcomes = append(outcomes, outcome)
				return outcomes, err
			}

			e.sendProgress(progress, insertUpdate(category, outcome.InsertedCount+1, len(videoIDs)))

			if err := e.source.InsertItem(ctx, playlistID, videoID); err != nil {
				outcome.InsertFailures = append(outcome.InsertFailures, InsertFailure{
					VideoID: videoID,
					Reason:  err.Error(),
				})
				e.sendProgress(progress, insertFailedUpdate(category, videoID, err))
				continue
			}

			outcome.InsertedCount++
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// Run performs a full split of the referenced playlist.
//
// Errors before materialization are fatal to the run: no partial playlist
// output is produced from an incomplete classification. Materialization is
// best-effort per item and fail-fast per playlist creation only; the result
// enumerates every failure.
func (e *PlaylistSplitter) Run(ctx context.Context, progress chan<- ProgressUpdate, req SplitRequest) (*SplitResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.oracle == nil {
		return nil, fmt.Errorf("%w: oracle service not initialized", shared.ErrServiceUnavailable)
	}

	result := &SplitResult{RunID: shared.GenerateID()}

	e.sendProgress(progress, extractingUpdate(req.PlaylistRef))
	playlistID, err := ExtractPlaylistID(req.PlaylistRef)
	if err != nil {
		return nil, e.fail(progress, Extracting, err)
	}
	result.PlaylistID = playlistID

	songs, err := e.readAll(ctx, progress, playlistID)
	if err != nil {
		return nil, e.fail(progress, Reading, err)
	}
	result.TotalSongs = len(songs)

	categories, suggested, err := e.resolveCategories(ctx, progress, songs, req.CustomCategories)
	if err != nil {
		return nil, e.fail(progress, Suggesting, err)
	}
	result.Categories = categories
	result.Suggested = suggested

	classifications, err := e.classifyAll(ctx, progress, songs, categories)
	if err != nil {
		return nil, e.fail(progress, Classifying, err)
	}
	result.BatchCount = (len(songs) + e.batchSize - 1) / e.batchSize

	groups := GroupByCategory(classifications)
	result.Groups = groups
	e.sendProgress(progress, groupingUpdate(len(classifications), len(groups)))

	order := CategoryOrder(categories, groups)
	outcomes, err := e.materialize(ctx, progress, order, groups)
	result.Outcomes = outcomes
	if err != nil {
		// Cancellation mid-materialization preserves the partial result.
		return result, e.fail(progress, Materializing, err)
	}

	e.sendProgress(progress, doneUpdate(result))
	return result, nil
}

// Suggest fetches the sample prefix of the referenced playlist and returns the
// oracle's suggested categories.
func (e *PlaylistSplitter) Suggest(ctx context.Context, progress chan<- ProgressUpdate, playlistRef string) ([]string, error) {
	if e.source == nil || e.oracle == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, extractingUpdate(playlistRef))
	playlistID, err := ExtractPlaylistID(playlistRef)
	if err != nil {
		return nil, e.fail(progress, Extracting, err)
	}

	songs, err := e.readAll(ctx, progress, playlistID)
	if err != nil {
		return nil, e.fail(progress, Reading, err)
	}

	categories, _, err := e.resolveCategories(ctx, progress, songs, nil)
	if err != nil {
		return nil, e.fail(progress, Suggesting, err)
	}

	return categories, nil
}

// Items reads the full ordered song list for the referenced playlist.
func (e *PlaylistSplitter) Items(ctx context.Context, progress chan<- ProgressUpdate, playlistRef string) ([]models.SongInfo, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, extractingUpdate(playlistRef))
	playlistID, err := ExtractPlaylistID(playlistRef)
	if err != nil {
		return nil, e.fail(progress, Extracting, err)
	}

	songs, err := e.readAll(ctx, progress, playlistID)
	if err != nil {
		return nil, e.fail(progress, Reading, err)
	}

	return songs, nil
}

// CleanCategories splits user-supplied category input on commas, trims
// whitespace, and drops empties. Accepts either pre-split values or a single
// comma-separated string.
func CleanCategories(raw []string) []string {
	var cleaned []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
	}
	return cleaned
}

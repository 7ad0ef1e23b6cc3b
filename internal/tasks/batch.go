package tasks

import (
	"fmt"

	"github.com/moodsplit/moodsplit/internal/models"
	"github.com/moodsplit/moodsplit/internal/shared"
)

// partitionBatches splits songs into consecutive batches of at most size items.
// The last batch may be smaller; concatenating batches in order reproduces the
// input. Batches share the input's backing array.
func partitionBatches(songs []models.SongInfo, size int) [][]models.SongInfo {
	if size <= 0 {
		size = defaultBatchSize
	}

	batches := make([][]models.SongInfo, 0, (len(songs)+size-1)/size)
	for start := 0; start < len(songs); start += size {
		end := start + size
		if end > len(songs) {
			end = len(songs)
		}
		batches = append(batches, songs[start:end])
	}
	return batches
}

// validateBatch enforces the per-batch integrity invariant: the set of video
// IDs in the result equals the set submitted (no drops, no duplicates, no
// foreign IDs) and every category is a member of the approved set.
//
// Violations are a correctness boundary, not a recoverable condition; silently
// reassigning a song risks dropping it from every output playlist.
func validateBatch(batch []models.SongInfo, results []models.Classification, approved []string) error {
	if len(results) != len(batch) {
		return fmt.Errorf("%w: submitted %d songs, got %d classifications",
			shared.ErrClassificationIntegrity, len(batch), len(results))
	}

	submitted := make(map[string]bool, len(batch))
	for _, song := range batch {
		submitted[song.VideoID] = true
	}

	approvedSet := make(map[string]bool, len(approved))
	for _, cat := range approved {
		approvedSet[cat] = true
	}

	returned := make(map[string]bool, len(results))
	for _, cls := range results {
		if !submitted[cls.VideoID] {
			return fmt.Errorf("%w: foreign videoId '%s'", shared.ErrClassificationIntegrity, cls.VideoID)
		}
		if returned[cls.VideoID] {
			return fmt.Errorf("%w: duplicate videoId '%s'", shared.ErrClassificationIntegrity, cls.VideoID)
		}
		if !approvedSet[cls.Category] {
			return fmt.Errorf("%w: category '%s' not in approved set", shared.ErrClassificationIntegrity, cls.Category)
		}
		returned[cls.VideoID] = true
	}

	for id := range submitted {
		if !returned[id] {
			return fmt.Errorf("%w: videoId '%s' dropped from response", shared.ErrClassificationIntegrity, id)
		}
	}

	return nil
}

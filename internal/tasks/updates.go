package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Pipeline phase enumeration
type Phase int

const (
	Extracting Phase = iota
	Reading
	Suggesting
	Classifying
	Grouping
	Materializing
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Extracting:
		return "extracting"
	case Reading:
		return "reading"
	case Suggesting:
		return "suggesting"
	case Classifying:
		return "classifying"
	case Grouping:
		return "grouping"
	case Materializing:
		return "materializing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

func extractingUpdate(ref string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Extracting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving playlist reference '%s'...", ref),
	}
}

func readPageUpdate(page, fetched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reading,
		Step:    page,
		Total:   page,
		Message: fmt.Sprintf("Fetching playlist page %d (%d songs so far)...", page, fetched),
	}
}

func readDoneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reading,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d songs from playlist", total),
	}
}

func suggestingUpdate(sampleSize int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Suggesting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Asking oracle to suggest categories from %d sample songs...", sampleSize),
	}
}

func suggestedUpdate(categories []string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Suggesting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Suggested categories: %v", categories),
		Data:    categories,
	}
}

func classifyBatchUpdate(batch, totalBatches int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Classifying,
		Step:    batch,
		Total:   totalBatches,
		Message: fmt.Sprintf("Classifying batch %d of %d...", batch, totalBatches),
	}
}

func groupingUpdate(total, categories int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Grouping,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Grouped %d songs into %d categories", total, categories),
	}
}

func createPlaylistUpdate(category string, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Materializing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating playlist for \"%s\"...", category),
	}
}

func createFailedUpdate(category string, step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Materializing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✗ Failed to create playlist for \"%s\": %v", category, err),
	}
}

func insertUpdate(category string, added, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Materializing,
		Step:    added,
		Total:   count,
		Message: fmt.Sprintf("Adding to \"%s\": %d/%d songs...", category, added, count),
	}
}

func insertFailedUpdate(category, videoID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Materializing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✗ Failed to add %s to \"%s\": %v", videoID, category, err),
	}
}

func doneUpdate(result *SplitResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Done: %d playlists created from %d songs", result.CreatedCount(), result.TotalSongs),
		Data:    result,
	}
}

func failedUpdate(phase Phase, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Failed,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Run failed during %s: %v", phase, err),
	}
}

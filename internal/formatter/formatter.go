// package formatter provides functions to export split run reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/moodsplit/moodsplit/internal/shared"
	"github.com/moodsplit/moodsplit/internal/tasks"
)

// ExportToCSV converts a SplitResult to CSV format with one row per category outcome.
//
// Columns: Category, PlaylistID, Created, Inserted, Failed, Error
func ExportToCSV(result *tasks.SplitResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Category", "PlaylistID", "Created", "Inserted", "Failed", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, outcome := range result.Outcomes {
		record := []string{
			outcome.Category,
			outcome.PlaylistID,
			strconv.FormatBool(outcome.Created),
			strconv.Itoa(outcome.InsertedCount),
			strconv.Itoa(len(outcome.InsertFailures)),
			outcome.CreateError,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SplitResult to Markdown format
func ExportToMarkdown(result *tasks.SplitResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Split report for %s\n\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("**Run**: %s\n", result.RunID))
	buf.WriteString(fmt.Sprintf("**Songs**: %d (%d batches)\n", result.TotalSongs, result.BatchCount))

	source := "user-supplied"
	if result.Suggested {
		source = "oracle-suggested"
	}
	buf.WriteString(fmt.Sprintf("**Categories** (%s): %d\n\n", source, len(result.Categories)))

	buf.WriteString("## Categories\n\n")
	for i, outcome := range result.Outcomes {
		status := "✓"
		if !outcome.Created {
			status = "✗"
		}
		buf.WriteString(fmt.Sprintf("%d. %s %s — %d/%d songs added\n",
			i+1, status, outcome.Category, outcome.InsertedCount, len(result.Groups[outcome.Category])))

		if outcome.CreateError != "" {
			buf.WriteString(fmt.Sprintf("   - creation failed: %s\n", outcome.CreateError))
		}
		for _, failure := range outcome.InsertFailures {
			buf.WriteString(fmt.Sprintf("   - %s: %s\n", failure.VideoID, failure.Reason))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SplitResult to plain text format
func ExportToText(result *tasks.SplitResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("Songs: %d\n", result.TotalSongs))
	buf.WriteString(fmt.Sprintf("Playlists created: %d of %d\n\n", result.CreatedCount(), len(result.Outcomes)))

	for i, outcome := range result.Outcomes {
		buf.WriteString(fmt.Sprintf("%d. %s: %d added, %d failed\n",
			i+1, outcome.Category, outcome.InsertedCount, len(outcome.InsertFailures)))
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the full run report
func ToJSON(result *tasks.SplitResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// WriteReport writes the run report to path in the requested format.
//
// Supported formats: csv, markdown, txt, json (default).
func WriteReport(result *tasks.SplitResult, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(result)
	case "markdown":
		data, err = ExportToMarkdown(result)
	case "txt":
		data, err = ExportToText(result)
	case "json":
		fallthrough
	default:
		data, err = ToJSON(result)
	}

	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

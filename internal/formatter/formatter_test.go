package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moodsplit/moodsplit/internal/tasks"
)

func sampleResult() *tasks.SplitResult {
	return &tasks.SplitResult{
		RunID:      "run-1",
		PlaylistID: "PLsource",
		TotalSongs: 5,
		BatchCount: 1,
		Categories: []string{"Chill", "Hype"},
		Groups: map[string][]string{
			"Chill": {"v1", "v3", "v5"},
			"Hype":  {"v2", "v4"},
		},
		Outcomes: []tasks.CategoryOutcome{
			{
				Category:      "Chill",
				PlaylistID:    "PLchill",
				Created:       true,
				InsertedCount: 3,
			},
			{
				Category:    "Hype",
				CreateError: "status 403",
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleResult())
	if err != nil {
		t.Fatalf("ExportToCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[1][0] != "Chill" || records[1][2] != "true" || records[1][3] != "3" {
		t.Errorf("chill row = %v", records[1])
	}
	if records[2][0] != "Hype" || records[2][2] != "false" || records[2][5] != "status 403" {
		t.Errorf("hype row = %v", records[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleResult())
	if err != nil {
		t.Fatalf("ExportToMarkdown() error = %v", err)
	}

	md := string(data)
	for _, want := range []string{"# Split report for PLsource", "✓ Chill — 3/3 songs added", "✗ Hype", "creation failed: status 403"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleResult())
	if err != nil {
		t.Fatalf("ExportToText() error = %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Playlists created: 1 of 2") {
		t.Errorf("text report missing summary:\n%s", text)
	}
}

func TestWriteReport(t *testing.T) {
	result := sampleResult()

	for _, format := range []string{"json", "csv", "markdown", "txt"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report."+format)
			if err := WriteReport(result, format, path); err != nil {
				t.Fatalf("WriteReport(%s) error = %v", format, err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("report file not written: %v", err)
			}
			if len(data) == 0 {
				t.Error("report file is empty")
			}
		})
	}

	t.Run("json roundtrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		if err := WriteReport(result, "json", path); err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		var decoded tasks.SplitResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		if decoded.PlaylistID != result.PlaylistID || len(decoded.Outcomes) != 2 {
			t.Errorf("decoded report = %+v", decoded)
		}
	})
}

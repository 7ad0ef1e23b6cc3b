// Package ui renders split run summaries for the terminal using [lipgloss] styles.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moodsplit/moodsplit/internal/tasks"
)

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// RenderSummary renders a styled terminal summary of a split run: one line per
// category with its materialization status, followed by a retry hint when
// anything failed.
func RenderSummary(result *tasks.SplitResult) string {
	var sb strings.Builder

	sb.WriteString(styles.title.Render(fmt.Sprintf("Split %s: %d songs → %d playlists", result.PlaylistID, result.TotalSongs, result.CreatedCount())))
	sb.WriteString("\n")

	failures := 0
	for _, outcome := range result.Outcomes {
		total := len(result.Groups[outcome.Category])

		switch {
		case !outcome.Created:
			failures++
			sb.WriteString(styles.err.Render(fmt.Sprintf("✗ %s: playlist not created (%s)", outcome.Category, outcome.CreateError)))
		case len(outcome.InsertFailures) > 0:
			failures++
			sb.WriteString(styles.warn.Render(fmt.Sprintf("△ %s (%s): %d/%d songs added, %d failed",
				outcome.Category, outcome.PlaylistID, outcome.InsertedCount, total, len(outcome.InsertFailures))))
		default:
			sb.WriteString(styles.ok.Render(fmt.Sprintf("✓ %s (%s): %d/%d songs added",
				outcome.Category, outcome.PlaylistID, outcome.InsertedCount, total)))
		}
		sb.WriteString("\n")
	}

	if failures > 0 {
		sb.WriteString(styles.help.Render("Some categories failed; rerun with --categories to retry the failed subset."))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderCategories renders a suggested category list for user review.
func RenderCategories(categories []string) string {
	var sb strings.Builder

	sb.WriteString(styles.title.Render("Suggested categories"))
	sb.WriteString("\n")
	for i, cat := range categories {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, styles.ok.Render(cat)))
	}
	sb.WriteString(styles.help.Render("Approve by rerunning: moodsplit split --categories \"" + strings.Join(categories, ", ") + "\""))
	sb.WriteString("\n")

	return sb.String()
}

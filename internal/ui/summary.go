// Package ui renders terminal summaries for analysis runs.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	totalStyle = lipgloss.NewStyle().Bold(true)
)

// FileSummary is the per-file outcome of one analysis run.
type FileSummary struct {
	Path     string
	Errors   int
	Warnings int
	Infos    int
}

func (s FileSummary) status() string {
	switch {
	case s.Errors > 0:
		return "error"
	case s.Warnings > 0:
		return "warn"
	default:
		return "ok"
	}
}

func styleFor(status string) lipgloss.Style {
	switch status {
	case "error":
		return errStyle
	case "warn":
		return warnStyle
	default:
		return okStyle
	}
}

// Summary prints one status line per file followed by a totals line.
// Width bounds the path column; zero uses a default of 80 columns.
func Summary(w io.Writer, files []FileSummary, color bool, width int) {
	if len(files) == 0 {
		return
	}
	if width <= 0 {
		width = 80
	}
	pathWidth := width - 24
	if pathWidth < 20 {
		pathWidth = 20
	}

	var totalErrs, totalWarns, totalInfos int
	for _, f := range files {
		status := f.status()
		label := fmt.Sprintf("%5s", status)
		if color {
			label = styleFor(status).Render(label)
		}
		fmt.Fprintf(w, "  %s  %s%s\n", label, pad(truncate(f.Path, pathWidth), pathWidth), counts(f))

		totalErrs += f.Errors
		totalWarns += f.Warnings
		totalInfos += f.Infos
	}

	line := fmt.Sprintf("%d files, %d errors, %d warnings", len(files), totalErrs, totalWarns)
	if totalInfos > 0 {
		line += fmt.Sprintf(", %d notes", totalInfos)
	}
	if color {
		line = totalStyle.Render(line)
	}
	fmt.Fprintf(w, "\n%s\n", line)
}

func counts(f FileSummary) string {
	parts := make([]string, 0, 3)
	if f.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", f.Errors))
	}
	if f.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", f.Warnings))
	}
	if f.Infos > 0 {
		parts = append(parts, fmt.Sprintf("%d notes", f.Infos))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, ", ")
}

func pad(value string, width int) string {
	gap := width - runewidth.StringWidth(value)
	if gap <= 0 {
		return value
	}
	return value + strings.Repeat(" ", gap)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

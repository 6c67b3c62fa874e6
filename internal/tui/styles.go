package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders listing output for a specific writer, so colour is only
// emitted when that writer is a terminal.
type Styles struct {
	renderer *lipgloss.Renderer
	statuses map[string]lipgloss.Style
	// Dim styles secondary text such as paths.
	Dim lipgloss.Style
	// Header styles table headers and titles.
	Header lipgloss.Style
}

// NewStyles builds styles bound to w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		renderer: r,
		statuses: map[string]lipgloss.Style{
			"installed":  r.NewStyle().Foreground(lipgloss.Color("2")),
			"registered": r.NewStyle().Foreground(lipgloss.Color("2")),
			"found":      r.NewStyle().Foreground(lipgloss.Color("4")),

			"downloadable": r.NewStyle().Faint(true),
			"pending":      r.NewStyle().Faint(true),

			"conflict": r.NewStyle().Foreground(lipgloss.Color("3")),
			"skipped":  r.NewStyle().Foreground(lipgloss.Color("3")),

			"error": r.NewStyle().Foreground(lipgloss.Color("1")),
		},
		Dim:    r.NewStyle().Faint(true),
		Header: r.NewStyle().Bold(true),
	}
}

// Status returns the style for the given status string.
func (s Styles) Status(status string) lipgloss.Style {
	if st, ok := s.statuses[status]; ok {
		return st
	}
	return s.renderer.NewStyle()
}

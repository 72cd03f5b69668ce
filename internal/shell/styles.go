package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("#8a94a6")
)

// Styles holds the lipgloss styles used by the shell. They are bound to a
// renderer for the output writer, so a pipe or buffer gets plain text.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles builds the shell styles for output w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		Bold:    r.NewStyle().Bold(true),
		Body:    r.NewStyle(),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Success: r.NewStyle().Foreground(colorPrimary),
		Error:   r.NewStyle().Bold(true).Foreground(colorError),
		Warning: r.NewStyle().Foreground(colorWarning),
	}
}

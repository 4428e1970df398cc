package tui

import (
	"wallpick/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles derived from a config theme.
type Styles struct {
	Border   lipgloss.Color
	Title    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Size     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
}

// NewStyles builds the styles for the named theme. Unknown names use the
// default theme.
func NewStyles(theme string) Styles {
	colors := config.GetTheme(theme)
	primary := lipgloss.Color(colors["primary"])
	muted := lipgloss.Color(colors["muted"])

	return Styles{
		Border: lipgloss.Color(colors["border"]),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Item: lipgloss.NewStyle(),
		Size: lipgloss.NewStyle().
			Foreground(muted),
		Muted: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["error"])),
		Status: lipgloss.NewStyle().
			Foreground(muted),
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Prompt   lipgloss.Style
	Modal    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles returns the default palette: dark cards, orange edit accent and
// red delete accent.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			MarginBottom(1),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E1E1E6")).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBA94C")).
			Bold(true).
			PaddingLeft(0),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C7C8A")).
			Italic(true).
			PaddingLeft(2),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBA94C")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F75A68")).
			Padding(0, 2).
			MarginTop(1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F75A68")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C7C8A")).
			MarginTop(1),
	}
}

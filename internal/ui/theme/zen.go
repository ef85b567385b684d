package theme

import "github.com/charmbracelet/lipgloss"

// Muted earth tones; checked days use Moss, the active tab uses Ember.
var (
	Base     = lipgloss.Color("#1f2320")
	Mantle   = lipgloss.Color("#191c1a")
	Surface0 = lipgloss.Color("#2c312d")
	Surface1 = lipgloss.Color("#3d443f")
	Text     = lipgloss.Color("#dfe3d8")
	Subtext0 = lipgloss.Color("#9ea79b")
	Sage     = lipgloss.Color("#a3b59a")
	Sky      = lipgloss.Color("#8fb3c4")
	Moss     = lipgloss.Color("#7fa36b")
	Ember    = lipgloss.Color("#e0a36a")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Sage)

	Title = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Ember).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Moss).Bold(true)
	Big   = lipgloss.NewStyle().Foreground(Ember).Bold(true).Padding(0, 1)
)

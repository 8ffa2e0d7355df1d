package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#97CE4C"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#8A8A8A"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	colorAlive   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#55CC44"}
	colorDead    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#D63D2E"}
	colorUnknown = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9E9E9E"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorError)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

// statusDot renders the coloured marker shown before a character's status
func statusDot(status string) string {
	color := colorUnknown
	switch status {
	case "Alive":
		color = colorAlive
	case "Dead":
		color = colorDead
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

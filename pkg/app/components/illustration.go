package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/story"
)

// Illustration previews a page illustration in the terminal. Placeholders
// become a colored panel with their caption, remote images show their URL.
func Illustration(ref string, width, height int) string {
	width, height = max(10, width), max(3, height)

	ph, err := story.ParsePlaceholder(ref)
	if err != nil {
		frame := styles.CardStyle.Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center)
		if ref == "" {
			return frame.Render(styles.MutedStyle.Render("No illustration"))
		}
		return frame.Render(styles.MutedStyle.Render("🖼  " + ref))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color("#" + ph.Background)).
		Foreground(lipgloss.Color("#" + ph.Foreground)).
		Bold(true).
		Render(ph.Text)
}

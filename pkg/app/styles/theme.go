package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FF8FAB")
	Secondary  = lipgloss.Color("#A78BFA")
	Success    = lipgloss.Color("#86EFAC")
	Warning    = lipgloss.Color("#FDE68A")
	Error      = lipgloss.Color("#F87171")
	Info       = lipgloss.Color("#7DD3FC")
	Muted      = lipgloss.Color("#64748B")
	Star       = lipgloss.Color("#FACC15")
	Background = lipgloss.Color("#1E1B2E")
	Foreground = lipgloss.Color("#F8FAFC")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Chip is an unselected option in the story form.
	ChipStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	ChipSelectedStyle = ChipStyle.
				Foreground(Background).
				Background(Primary).
				BorderForeground(Primary).
				Bold(true)

	ChipCursorStyle = ChipStyle.
			BorderForeground(Info)

	ChipSelectedCursorStyle = ChipSelectedStyle.
				BorderForeground(Info)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Muted).
			Padding(0, 3)

	ActiveButtonStyle = ButtonStyle.
				Foreground(Background).
				Background(Primary).
				Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 2).
			MarginBottom(1)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginBottom(1)

	StatusWorking = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	StarStyle = lipgloss.NewStyle().
			Foreground(Star)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#2E2A45")).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)
)

// StatusStyle picks the style for an export progress state.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "rendering", "composing":
		return StatusWorking
	case "complete":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}

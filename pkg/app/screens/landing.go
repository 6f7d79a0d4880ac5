package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storytime/pkg/app/styles"
)

var landingFeatures = []struct {
	icon, title, body string
}{
	{"✨", "Personalized Stories", "Create unique stories featuring your child's favorite characters, themes, and settings."},
	{"🎨", "Beautiful Illustrations", "Each story comes with a picture on every page to spark your child's imagination."},
	{"🔊", "Read Aloud", "Turn on read-aloud mode for a cozy story time, and save the stories you love."},
}

type landingKeys struct {
	Start key.Binding
	Quit  key.Binding
}

// LandingScreen introduces the app and leads to the dashboard.
type LandingScreen struct {
	keys   landingKeys
	width  int
	height int
}

func NewLandingScreen() *LandingScreen {
	return &LandingScreen{
		keys: landingKeys{
			Start: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start creating stories")),
			Quit:  key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		},
	}
}

func (s *LandingScreen) Init() tea.Cmd {
	return nil
}

func (s *LandingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Start):
			return s, switchTo(ScreenDashboard, DashboardOptions{Tab: TabGenerate})
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *LandingScreen) View() string {
	title := styles.TitleStyle.Render("📖 Story Time")
	tagline := styles.SubtitleStyle.Render("Magical bedtime stories, made just for your little one.")

	cardWidth := 30
	if s.width > 0 {
		cardWidth = max(24, (s.width-8)/len(landingFeatures))
	}

	cards := make([]string, len(landingFeatures))
	for i, f := range landingFeatures {
		cards[i] = styles.CardStyle.Width(cardWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.UnsetMarginBottom().Render(f.icon+" "+f.title),
			styles.TextStyle.Render(f.body),
		))
	}
	features := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if s.width > 0 && lipgloss.Width(features) > s.width {
		features = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	start := styles.ActiveButtonStyle.Render("Start Creating Stories")
	help := styles.HelpStyle.Render("enter: start creating stories • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, tagline, "", features, start, help)
}

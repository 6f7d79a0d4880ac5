package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storytime/pkg/services"
	"github.com/kerbaras/storytime/pkg/story"
)

const (
	ScreenLanding   = "landing"
	ScreenDashboard = "dashboard"
	ScreenPlayer    = "player"
)

// SwitchScreenMsg asks the root screen to change the active view. For the
// player Data is either a story id or an unsaved *story.Story, for the
// dashboard it is an optional DashboardOptions.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type DashboardOptions struct {
	Tab   Tab
	Reset bool
}

// StoryService is what the screens need from the story controller.
type StoryService interface {
	User() string
	GeneratorName() string
	Generate(ctx context.Context, prompt story.Prompt) (*story.Story, error)
	Save(ctx context.Context, s *story.Story) (string, error)
	Rate(ctx context.Context, id string, rating int) error
	Stories(ctx context.Context) ([]*story.Story, error)
	Story(ctx context.Context, id string) (*story.Story, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, s *story.Story, profile string) (string, error)
	ExportProgress() <-chan services.ExportProgress
}

func switchTo(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: data}
	}
}

package screens

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/services"
	"github.com/kerbaras/storytime/pkg/story"
)

type mockService struct {
	generateFunc func(ctx context.Context, prompt story.Prompt) (*story.Story, error)
	saveFunc     func(ctx context.Context, s *story.Story) (string, error)
	rateFunc     func(ctx context.Context, id string, rating int) error
	storiesFunc  func(ctx context.Context) ([]*story.Story, error)
	storyFunc    func(ctx context.Context, id string) (*story.Story, error)
	deleteFunc   func(ctx context.Context, id string) error
	exportFunc   func(ctx context.Context, s *story.Story, profile string) (string, error)
	progress     chan services.ExportProgress
}

func (m *mockService) User() string          { return "sam" }
func (m *mockService) GeneratorName() string { return "builtin" }

func (m *mockService) Generate(ctx context.Context, prompt story.Prompt) (*story.Story, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return testStory(), nil
}

func (m *mockService) Save(ctx context.Context, s *story.Story) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s)
	}
	return s.ID, nil
}

func (m *mockService) Rate(ctx context.Context, id string, rating int) error {
	if m.rateFunc != nil {
		return m.rateFunc(ctx, id, rating)
	}
	return nil
}

func (m *mockService) Stories(ctx context.Context) ([]*story.Story, error) {
	if m.storiesFunc != nil {
		return m.storiesFunc(ctx)
	}
	return nil, nil
}

func (m *mockService) Story(ctx context.Context, id string) (*story.Story, error) {
	if m.storyFunc != nil {
		return m.storyFunc(ctx, id)
	}
	return nil, story.ErrNotFound
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockService) Export(ctx context.Context, s *story.Story, profile string) (string, error) {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, s, profile)
	}
	return "/tmp/out.epub", nil
}

func (m *mockService) ExportProgress() <-chan services.ExportProgress {
	if m.progress == nil {
		m.progress = make(chan services.ExportProgress, 10)
	}
	return m.progress
}

func testStory() *story.Story {
	pages := make([]story.Page, 5)
	for i := range pages {
		pages[i] = story.Page{
			Number:       i + 1,
			Text:         "Once upon a time. Turn the page.",
			Illustration: story.Placeholder{Width: 800, Height: 600, Background: "87CEEB", Foreground: "FFFFFF", Text: "Forest"}.String(),
		}
	}
	pages[4].Text = "Everyone slept. The End."
	return &story.Story{
		ID:     "story-1",
		UserID: "sam",
		Title:  "Max's Bedtime Story",
		Prompt: story.Prompt{Theme: "Bedtime", Mood: "Calm", Setting: "Forest", Characters: []string{"Dog"}},
		Pages:  pages,
	}
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// run executes cmd and flattens batches into the resulting messages.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func nopLogger() *zap.Logger { return zap.NewNop() }

package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/app/components"
	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/integrations"
	"github.com/kerbaras/storytime/pkg/services"
	"github.com/kerbaras/storytime/pkg/story"
)

type playerKeys struct {
	Next      key.Binding
	Prev      key.Binding
	ReadAloud key.Binding
	Save      key.Binding
	Rate      key.Binding
	NewStory  key.Binding
	Export    key.Binding
	Profile   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k playerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.ReadAloud, k.Export, k.Back, k.Quit}
}

func (k playerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.ReadAloud},
		{k.Save, k.Rate, k.NewStory},
		{k.Export, k.Profile, k.Back, k.Quit},
	}
}

func newPlayerKeys() playerKeys {
	return playerKeys{
		Next:      key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "next page")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous page")),
		ReadAloud: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "read aloud")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save story")),
		Rate:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate")),
		NewStory:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new story")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export EPUB")),
		Profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "reader profile")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// PlayerScreen pages through one story and offers the end of story actions.
type PlayerScreen struct {
	svc StoryService
	log *zap.Logger

	storyID string
	story   *story.Story
	pages   *story.Pagination
	saved   bool
	saving  bool
	loading bool

	readAloud bool
	exporting bool
	profile   string
	progress  *components.ProgressTracker

	notice components.Notice
	keys   playerKeys
	help   help.Model
	width  int
	height int
}

// NewPlayerScreen opens a saved story by id or shows an unsaved *story.Story.
func NewPlayerScreen(svc StoryService, log *zap.Logger, data interface{}) *PlayerScreen {
	s := &PlayerScreen{
		svc:      svc,
		log:      log,
		profile:  integrations.DefaultProfile,
		progress: components.NewProgressTracker(76),
		keys:     newPlayerKeys(),
		help:     help.New(),
	}

	switch d := data.(type) {
	case string:
		s.storyID = d
		s.saved = true
		s.loading = true
	case *story.Story:
		s.setStory(d)
	default:
		s.notice.Error(fmt.Errorf("%w: no story to show", story.ErrValidation))
	}
	return s
}

func (s *PlayerScreen) setStory(st *story.Story) {
	pages, err := story.NewPagination(st.Pages)
	if err != nil {
		s.notice.Error(err)
		return
	}
	s.story = st
	s.storyID = st.ID
	s.pages = pages
}

func (s *PlayerScreen) Story() *story.Story { return s.story }

func (s *PlayerScreen) Pages() *story.Pagination { return s.pages }

func (s *PlayerScreen) Saved() bool { return s.saved }

func (s *PlayerScreen) ReadAloud() bool { return s.readAloud }

// ToggleReadAloud flips the read-aloud presentation flag.
func (s *PlayerScreen) ToggleReadAloud() {
	s.readAloud = !s.readAloud
}

func (s *PlayerScreen) Init() tea.Cmd {
	if s.loading {
		return s.loadStory
	}
	return nil
}

func (s *PlayerScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.progress.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		s.notice.Clear()
		return s, s.handleKey(msg)

	case storyLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.setStory(msg.story)

	case storySavedMsg:
		s.saving = false
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.saved = true
		s.notice.Success("Story saved! Find it under Saved Stories.")

	case storyRatedMsg:
		s.saving = false
		if msg.saved {
			s.saved = true
		}
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.story.Rating = msg.rating
		s.notice.Success("Thanks for rating this story " + components.Stars(msg.rating))

	case services.ExportProgress:
		s.progress.Update(msg)
		if s.exporting {
			return s, s.listenForProgress
		}

	case storyExportedMsg:
		s.exporting = false
		s.progress.Clear()
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.notice.Success("Exported to " + msg.path)
	}

	return s, nil
}

func (s *PlayerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.keys.Back):
		tab := TabGenerate
		if s.saved {
			tab = TabSaved
		}
		return switchTo(ScreenDashboard, DashboardOptions{Tab: tab})
	}

	if s.pages == nil {
		return nil
	}

	switch {
	case key.Matches(msg, s.keys.Next):
		s.pages.Next()
	case key.Matches(msg, s.keys.Prev):
		s.pages.Previous()
	case key.Matches(msg, s.keys.ReadAloud):
		s.ToggleReadAloud()
	case key.Matches(msg, s.keys.Profile):
		s.profile = nextProfile(s.profile)
		s.notice.Info("Export profile: " + s.profile)
	case key.Matches(msg, s.keys.Export):
		if s.exporting {
			s.notice.Info("An export is already running.")
			return nil
		}
		s.exporting = true
		return tea.Batch(s.exportStory(s.profile), s.listenForProgress)
	case key.Matches(msg, s.keys.Save), key.Matches(msg, s.keys.Rate), key.Matches(msg, s.keys.NewStory):
		if !s.pages.IsLast() {
			s.notice.Info("Read to the last page to save, rate or start a new story.")
			return nil
		}
		return s.handleEndAction(msg)
	}
	return nil
}

// handleEndAction runs the last page actions. Saves and ratings are
// serialized: while one is being written the others are refused.
func (s *PlayerScreen) handleEndAction(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Save):
		if s.saving {
			s.notice.Info("Saving your story...")
			return nil
		}
		if s.saved {
			s.notice.Info("This story is already saved.")
			return nil
		}
		s.saving = true
		return s.saveStory
	case key.Matches(msg, s.keys.Rate):
		if s.saving {
			s.notice.Info("Still saving, rate again in a moment.")
			return nil
		}
		rating, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil
		}
		s.saving = true
		return s.rateStory(rating)
	case key.Matches(msg, s.keys.NewStory):
		return switchTo(ScreenDashboard, DashboardOptions{Tab: TabGenerate, Reset: true})
	}
	return nil
}

func nextProfile(current string) string {
	ids := integrations.ProfileIDs()
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

func (s *PlayerScreen) View() string {
	if s.loading {
		return styles.MutedStyle.Render("Opening story...")
	}

	width := 80
	if s.width > 0 {
		width = s.width
	}

	if s.pages == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("📖 Story Time"),
			s.notice.View(),
			styles.HelpStyle.Render("esc: back • q: quit"),
		)
	}

	page := s.pages.Current()

	audio := styles.MutedStyle.Render("🔈 Read aloud off")
	if s.readAloud {
		audio = styles.StatusWorking.Render("🔊 Reading aloud")
	}
	status := styles.MutedStyle.Render("not saved")
	if s.saved {
		status = styles.StatusCompleted.Render("saved")
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.UnsetMarginBottom().Render("📖 "+s.story.Title),
		styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", page.Number, s.pages.Len()))+
			"  "+audio+"  "+status+"  "+components.Stars(s.story.Rating),
	)

	illustration := components.Illustration(page.Illustration, width-4, max(5, s.height/4))
	text := styles.CardStyle.Width(width - 4).Render(styles.TextStyle.Render(page.Text))
	bar := components.SimpleProgress(s.pages.Index()+1, s.pages.Len(), width-4)

	parts := []string{header, "", illustration, text, bar}

	if s.pages.IsLast() {
		actions := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.ActiveButtonStyle.Render("s  Save Story"), "  ",
			styles.ButtonStyle.Render("1-5  Rate "+components.Stars(s.story.Rating)), "  ",
			styles.ButtonStyle.Render("n  Generate New Story"),
		)
		parts = append(parts, "", styles.SubtitleStyle.Render("The End! What would you like to do next?"), actions)
	}

	if s.progress.HasActive() {
		parts = append(parts, "", s.progress.View())
	}
	if s.notice.Active() {
		parts = append(parts, "", s.notice.View())
	}
	parts = append(parts,
		styles.MutedStyle.Render("export profile: "+s.profile),
		styles.HelpStyle.Render(s.help.View(s.keys)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Messages
type storyLoadedMsg struct {
	story *story.Story
	err   error
}

type storySavedMsg struct {
	id  string
	err error
}

type storyRatedMsg struct {
	rating int
	saved  bool
	err    error
}

type storyExportedMsg struct {
	path string
	err  error
}

// Commands
func (s *PlayerScreen) loadStory() tea.Msg {
	st, err := s.svc.Story(context.Background(), s.storyID)
	if errors.Is(err, story.ErrNotFound) {
		err = fmt.Errorf("story %s: %w", s.storyID, err)
	}
	return storyLoadedMsg{story: st, err: err}
}

func (s *PlayerScreen) saveStory() tea.Msg {
	id, err := s.svc.Save(context.Background(), s.story)
	return storySavedMsg{id: id, err: err}
}

// rateStory saves an unsaved story before recording the rating.
func (s *PlayerScreen) rateStory(rating int) tea.Cmd {
	st, saved := s.story, s.saved
	return func() tea.Msg {
		ctx := context.Background()
		if !saved {
			if _, err := s.svc.Save(ctx, st); err != nil {
				return storyRatedMsg{rating: rating, err: err}
			}
		}
		err := s.svc.Rate(ctx, st.ID, rating)
		return storyRatedMsg{rating: rating, saved: true, err: err}
	}
}

func (s *PlayerScreen) exportStory(profile string) tea.Cmd {
	st := s.story
	return func() tea.Msg {
		path, err := s.svc.Export(context.Background(), st, profile)
		return storyExportedMsg{path: path, err: err}
	}
}

func (s *PlayerScreen) listenForProgress() tea.Msg {
	return <-s.svc.ExportProgress()
}

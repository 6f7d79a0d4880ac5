package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/app/components"
	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/services"
	"github.com/kerbaras/storytime/pkg/story"
)

type Tab int

const (
	TabGenerate Tab = iota
	TabSaved
	TabAccount
)

var tabNames = []string{"Story Time", "Saved Stories", "Account"}

type dashboardKeys struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Choose  key.Binding
	Create  key.Binding
	Clear   key.Binding
	Cancel  key.Binding
	Open    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Choose:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "choose")),
		Create:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "create story")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear choices")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// submitRow is the focus row of the Create Story button, after the pickers.
const submitRow = 4

// DashboardScreen holds the story form, the saved stories and the account
// panel.
type DashboardScreen struct {
	svc     StoryService
	log     *zap.Logger
	tracker *services.GenerationTracker

	tab       Tab
	selection *story.Selection
	pickers   []*components.OptionPicker
	focus     int

	pending story.Prompt
	spinner spinner.Model

	stories *components.StoryList
	notice  components.Notice

	keys   dashboardKeys
	help   help.Model
	width  int
	height int
}

func NewDashboardScreen(svc StoryService, log *zap.Logger) *DashboardScreen {
	opts := story.DefaultOptions()
	pickers := make([]*components.OptionPicker, 0, len(story.Fields()))
	for _, f := range story.Fields() {
		pickers = append(pickers, components.NewOptionPicker(f, opts))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &DashboardScreen{
		svc:       svc,
		log:       log,
		tracker:   services.NewGenerationTracker(),
		selection: story.NewSelection(opts),
		pickers:   pickers,
		spinner:   sp,
		stories:   components.NewStoryList(),
		keys:      newDashboardKeys(),
		help:      help.New(),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return s.loadStories
}

// Open is called whenever the dashboard becomes the active screen.
func (s *DashboardScreen) Open(opts DashboardOptions) tea.Cmd {
	s.tab = opts.Tab
	if opts.Reset {
		s.selection.Reset()
		s.focus = 0
		for _, p := range s.pickers {
			p.Cursor = 0
		}
	}
	return s.loadStories
}

func (s *DashboardScreen) Selection() *story.Selection { return s.selection }

func (s *DashboardScreen) Generating() bool { return s.tracker.InFlight() }

func (s *DashboardScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.stories.Width = msg.Width - 4
		s.stories.Height = msg.Height - 10

	case tea.KeyMsg:
		s.notice.Clear()
		if s.tracker.InFlight() {
			if key.Matches(msg, s.keys.Cancel) {
				s.tracker.Cancel()
				s.notice.Info("Story creation cancelled.")
			}
			return s, nil
		}

		switch {
		case key.Matches(msg, s.keys.NextTab):
			return s, s.switchTab((s.tab + 1) % Tab(len(tabNames)))
		case key.Matches(msg, s.keys.PrevTab):
			return s, s.switchTab((s.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.Back):
			return s, switchTo(ScreenLanding, nil)
		}

		switch s.tab {
		case TabGenerate:
			return s, s.updateForm(msg)
		case TabSaved:
			return s, s.updateSaved(msg)
		}

	case spinner.TickMsg:
		if !s.tracker.InFlight() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case generatedMsg:
		if !s.tracker.Accept(msg.ticket) {
			s.log.Debug("dropping stale generation result", zap.Uint64("ticket", uint64(msg.ticket)))
			return s, nil
		}
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		return s, switchTo(ScreenPlayer, msg.story)

	case storiesLoadedMsg:
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.stories.SetItems(msg.items)

	case storyDeletedMsg:
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.notice.Success(fmt.Sprintf("Deleted %q", msg.title))
		return s, s.loadStories
	}

	return s, nil
}

func (s *DashboardScreen) switchTab(tab Tab) tea.Cmd {
	s.tab = tab
	if tab == TabSaved || tab == TabAccount {
		return s.loadStories
	}
	return nil
}

func (s *DashboardScreen) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.focus = max(0, s.focus-1)
	case key.Matches(msg, s.keys.Down):
		s.focus = min(submitRow, s.focus+1)
	case key.Matches(msg, s.keys.Left):
		if s.focus < submitRow {
			s.pickers[s.focus].Prev()
		}
	case key.Matches(msg, s.keys.Right):
		if s.focus < submitRow {
			s.pickers[s.focus].Next()
		}
	case key.Matches(msg, s.keys.Create):
		return s.submit()
	case key.Matches(msg, s.keys.Clear):
		s.selection.Reset()
	case key.Matches(msg, s.keys.Choose):
		if s.focus == submitRow {
			return s.submit()
		}
		p := s.pickers[s.focus]
		s.selection.Choose(p.Field, p.Current())
	}
	return nil
}

func (s *DashboardScreen) updateSaved(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.stories.Prev()
	case key.Matches(msg, s.keys.Down):
		s.stories.Next()
	case key.Matches(msg, s.keys.Refresh):
		return s.loadStories
	case key.Matches(msg, s.keys.Open):
		if selected := s.stories.Selected(); selected != nil {
			return switchTo(ScreenPlayer, selected.ID)
		}
	case key.Matches(msg, s.keys.Delete):
		if selected := s.stories.Selected(); selected != nil {
			return s.deleteStory(selected)
		}
	}
	return nil
}

// submit validates the form and starts a generation. An earlier request
// still in flight is cancelled and its result dropped.
func (s *DashboardScreen) submit() tea.Cmd {
	if err := s.selection.Validate(); err != nil {
		s.notice.Error(err)
		return nil
	}

	ctx, ticket := s.tracker.Begin(context.Background())
	prompt := s.selection.Prompt()
	s.pending = prompt
	s.log.Info("generating story",
		zap.String("theme", prompt.Theme),
		zap.String("mood", prompt.Mood),
		zap.String("setting", prompt.Setting),
		zap.Strings("characters", prompt.Characters),
	)

	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		st, err := s.svc.Generate(ctx, prompt)
		return generatedMsg{ticket: ticket, story: st, err: err}
	})
}

func (s *DashboardScreen) View() string {
	header := styles.TitleStyle.Render(fmt.Sprintf("📖 Story Time • Hello, %s!", s.svc.User()))

	var body string
	switch s.tab {
	case TabGenerate:
		body = s.viewForm()
	case TabSaved:
		body = s.stories.View()
	case TabAccount:
		body = s.viewAccount()
	}

	parts := []string{header, s.renderTabs(), "", body}
	if s.notice.Active() {
		parts = append(parts, "", s.notice.View())
	}
	parts = append(parts, styles.HelpStyle.Render(s.help.ShortHelpView(s.helpBindings())))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *DashboardScreen) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == s.tab {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (s *DashboardScreen) viewForm() string {
	if s.tracker.InFlight() {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.spinner.View()+" "+styles.StatusWorking.Render(GeneratingNotice(s.pending)),
			styles.MutedStyle.Render("esc: cancel"),
		)
	}

	width := 80
	if s.width > 0 {
		width = s.width - 4
	}

	rows := make([]string, 0, len(s.pickers)+1)
	for i, p := range s.pickers {
		rows = append(rows, p.View(s.selection, s.focus == i, width), "")
	}

	button := styles.ButtonStyle
	if s.focus == submitRow {
		button = styles.ActiveButtonStyle
	}
	submit := button.Render("Create Story")
	if missing := s.selection.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		submit += styles.MutedStyle.Render("  still to choose: " + strings.Join(names, ", "))
	}
	rows = append(rows, submit)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *DashboardScreen) viewAccount() string {
	rated, total := 0, 0
	for _, st := range s.stories.Items {
		if st.Rated() {
			rated++
			total += st.Rating
		}
	}
	average := "no ratings yet"
	if rated > 0 {
		average = fmt.Sprintf("%.1f from %d rated", float64(total)/float64(rated), rated)
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TextStyle.Render("User: "+s.svc.User()),
		styles.TextStyle.Render("Story generator: "+s.svc.GeneratorName()),
		styles.TextStyle.Render(fmt.Sprintf("Saved stories: %d", len(s.stories.Items))),
		styles.TextStyle.Render("Average rating: "+average),
	))
}

func (s *DashboardScreen) helpBindings() []key.Binding {
	k := s.keys
	if s.tracker.InFlight() {
		return []key.Binding{k.Cancel}
	}
	switch s.tab {
	case TabGenerate:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Choose, k.Create, k.Clear, k.NextTab, k.Quit}
	case TabSaved:
		return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Refresh, k.NextTab, k.Quit}
	}
	return []key.Binding{k.NextTab, k.PrevTab, k.Back, k.Quit}
}

// GeneratingNotice is shown while a story is being created.
func GeneratingNotice(p story.Prompt) string {
	return fmt.Sprintf("We're creating your adventure with %s in a %s %s setting...",
		strings.Join(p.Characters, ", "), strings.ToLower(p.Mood), strings.ToLower(p.Setting))
}

// Messages
type generatedMsg struct {
	ticket services.Ticket
	story  *story.Story
	err    error
}

type storiesLoadedMsg struct {
	items []*story.Story
	err   error
}

type storyDeletedMsg struct {
	title string
	err   error
}

// Commands
func (s *DashboardScreen) loadStories() tea.Msg {
	items, err := s.svc.Stories(context.Background())
	return storiesLoadedMsg{items: items, err: err}
}

func (s *DashboardScreen) deleteStory(st *story.Story) tea.Cmd {
	return func() tea.Msg {
		err := s.svc.Delete(context.Background(), st.ID)
		return storyDeletedMsg{title: st.Title, err: err}
	}
}

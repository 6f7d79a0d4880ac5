package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type screenType int

const (
	landingView screenType = iota
	dashboardView
	playerView
)

// RootScreen owns the three views and routes SwitchScreenMsg between them.
type RootScreen struct {
	svc StoryService
	log *zap.Logger

	currentView screenType
	landing     *LandingScreen
	dashboard   *DashboardScreen
	player      *PlayerScreen

	width  int
	height int
}

func NewRootScreen(svc StoryService, log *zap.Logger) *RootScreen {
	return &RootScreen{
		svc:         svc,
		log:         log,
		currentView: landingView,
		landing:     NewLandingScreen(),
		dashboard:   NewDashboardScreen(svc, log),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.landing.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.landing.Update(msg)
		r.dashboard.Update(msg)
		if r.player != nil {
			r.player.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case ScreenLanding:
			r.currentView = landingView
			cmd = r.landing.Init()
		case ScreenDashboard:
			opts, _ := msg.Data.(DashboardOptions)
			r.currentView = dashboardView
			cmd = r.dashboard.Open(opts)
		case ScreenPlayer:
			r.player = NewPlayerScreen(r.svc, r.log, msg.Data)
			if r.width > 0 {
				r.player.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
			}
			r.currentView = playerView
			cmd = r.player.Init()
		default:
			r.log.Warn("unknown screen", zap.String("screen", msg.Screen))
		}
		r.log.Debug("switched screen", zap.String("screen", msg.Screen))
		return r, cmd
	}

	// Generation results belong to the dashboard even when another view is
	// active, so the tracker always sees them.
	if _, ok := msg.(generatedMsg); ok {
		_, cmd = r.dashboard.Update(msg)
		return r, cmd
	}

	switch r.currentView {
	case landingView:
		_, cmd = r.landing.Update(msg)
	case dashboardView:
		_, cmd = r.dashboard.Update(msg)
	case playerView:
		if r.player != nil {
			_, cmd = r.player.Update(msg)
		}
	}
	return r, cmd
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case dashboardView:
		return r.dashboard.View()
	case playerView:
		if r.player != nil {
			return r.player.View()
		}
	}
	return r.landing.View()
}

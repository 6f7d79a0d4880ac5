package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/app/screens"
)

type App struct {
	svc screens.StoryService
	log *zap.Logger
}

func NewApp(svc screens.StoryService, log *zap.Logger) *App {
	return &App{svc: svc, log: log}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.svc, a.log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

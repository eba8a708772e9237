package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/pkg/api"
	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
)

type sessionState int

const (
	composerView sessionState = iota
	managerView
)

// App is the root model: it routes events to the active view and owns
// the status bar.
type App struct {
	state     sessionState
	composer  *ComposerModel
	manager   *ManagerModel
	width     int
	height    int
	statusMsg string
}

// NewApp wires the views to one shared client and store.
func NewApp(settings *models.Settings, client *api.Client, templates *store.Store, log zerolog.Logger) *App {
	return &App{
		state:    composerView,
		composer: NewComposerModel(settings, client, templates, log),
		manager:  NewManagerModel(templates, log),
	}
}

func (a *App) Init() tea.Cmd {
	return a.composer.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		if a.composer != nil {
			a.composer.SetSize(msg.Width, msg.Height)
		}
		if a.manager != nil {
			a.manager.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case composerView:
			a.state = composerView
			a.composer.SetSize(a.width, a.height)
			return a, a.composer.Init()
		case managerView:
			a.state = managerView
			a.manager.SetSize(a.width, a.height)
			return a, a.manager.Init()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case composerView:
		var m tea.Model
		m, cmd = a.composer.Update(msg)
		if cm, ok := m.(*ComposerModel); ok {
			a.composer = cm
		}
	case managerView:
		var m tea.Model
		m, cmd = a.manager.Update(msg)
		if mm, ok := m.(*ManagerModel); ok {
			a.manager = mm
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case composerView:
		content = a.composer.View()
	case managerView:
		content = a.manager.View()
	default:
		content = "Unknown view"
	}

	if a.statusMsg != "" {
		content += "\n" + StatusBarStyle.Render(a.statusMsg)
	}

	return content
}

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view sessionState
}

func switchTo(view sessionState) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{view: view}
	}
}

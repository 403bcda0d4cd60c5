package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/config"
	"github.com/bytetechedu/bytetech/internal/router"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/screens/home"
	"github.com/bytetechedu/bytetech/internal/screens/login"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
)

// Deps carries everything the screens need. Built once in cmd and
// threaded through screen constructors.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Store   *store.Store
	Logger  *zap.Logger
	Config  config.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *Deps
	router *router.Router
	width  int
	height int
}

// newAppModel picks the initial screen from the restored session:
// straight to home when a token survives, login otherwise.
func newAppModel(deps *Deps) AppModel {
	var initial screen.Screen
	if deps.Session.LoggedIn() {
		initial = home.New(home.Deps{
			Client:  deps.Client,
			Session: deps.Session,
			Store:   deps.Store,
			Logger:  deps.Logger,
		})
	} else {
		initial = login.New(login.Deps{
			Client:  deps.Client,
			Session: deps.Session,
			Store:   deps.Store,
			Logger:  deps.Logger,
		})
	}
	return AppModel{
		deps:   deps,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// screens that track size get the message too
		cmd := m.router.Update(msg)
		return m, cmd

	case router.LoggedOutMsg:
		next := login.New(login.Deps{
			Client:  m.deps.Client,
			Session: m.deps.Session,
			Store:   m.deps.Store,
			Logger:  m.deps.Logger,
		})
		cmd := m.router.Update(router.ReplaceScreenMsg{Screen: next})
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// let modal screens consume esc themselves
				if c, ok := m.router.Active().(escConsumer); ok && c.ConsumesEsc() {
					break
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escConsumer lets a screen keep esc for itself, e.g. to leave a
// compose box instead of popping the whole screen.
type escConsumer interface {
	ConsumesEsc() bool
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.Session.Username(), m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps *Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// Package home is the main menu after login.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/router"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/screens/catalog"
	"github.com/bytetechedu/bytetech/internal/screens/editor"
	"github.com/bytetechedu/bytetech/internal/screens/stats"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

// Deps are the shared services threaded into child screens.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Store   *store.Store
	Logger  *zap.Logger
}

// HomeScreen is the main navigation menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// logoutDoneMsg is sent after the server-side logout resolves.
type logoutDoneMsg struct{ Err error }

// New creates the home screen. The workbench entry only appears for
// teacher accounts.
func New(deps Deps) *HomeScreen {
	s := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "BROWSE CATALOG", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: catalog.New(catalogDeps(deps), catalog.ModeCatalog)}
			}
		}},
		{Label: "MY COURSES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: catalog.New(catalogDeps(deps), catalog.ModeOwned)}
			}
		}},
		{Label: "MY STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(stats.Deps{
					Client: deps.Client,
					Store:  deps.Store,
					Logger: deps.Logger,
				})}
			}
		}},
	}

	if deps.Session.IsSensei() {
		items = append(items, components.MenuItem{
			Label: "WORKBENCH",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: editor.New(editor.Deps{
						Client:  deps.Client,
						Session: deps.Session,
						Logger:  deps.Logger,
					})}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "LOG OUT", Action: s.logout},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	)

	s.menu = components.NewMenu(items)
	return s
}

func catalogDeps(deps Deps) catalog.Deps {
	return catalog.Deps{
		Client:  deps.Client,
		Session: deps.Session,
		Store:   deps.Store,
		Logger:  deps.Logger,
	}
}

func (s *HomeScreen) logout() tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		err := client.Logout(context.Background())
		return logoutDoneMsg{Err: err}
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		// the local session clears even if the server call failed
		if msg.Err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("server logout failed", zap.Error(msg.Err))
		}
		if err := s.deps.Session.Logout(); err != nil {
			s.errMsg = "could not clear session: " + err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.LoggedOutMsg{} }
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(44).Render("ByteTechEdu"))
	b.WriteString("\n")

	user := s.deps.Session.User()
	if user != nil {
		role := "student"
		if user.IsSensei {
			role = "sensei"
		}
		b.WriteString(theme.Subtitle.Width(44).Render(user.Name + " · " + role))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, 44))
	}

	card := theme.Card.Width(48).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

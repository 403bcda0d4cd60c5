// Package catalog lists courses: the public catalog or the caller's
// purchased courses, depending on mode.
package catalog

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/router"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/screens/course"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

// Mode selects which course list the screen shows.
type Mode int

const (
	// ModeCatalog shows every published course.
	ModeCatalog Mode = iota
	// ModeOwned shows only the caller's purchased courses.
	ModeOwned
)

// Deps are the services the catalog needs.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Store   *store.Store
	Logger  *zap.Logger
}

// CatalogScreen is a scrollable course list.
type CatalogScreen struct {
	deps Deps
	mode Mode

	gen      uint64
	loading  bool
	courses  []api.Course
	selected int
	offset   int
	errMsg   string
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)

// New creates a catalog screen in the given mode.
func New(deps Deps, mode Mode) *CatalogScreen {
	return &CatalogScreen{deps: deps, mode: mode}
}

func (s *CatalogScreen) Init() tea.Cmd {
	return s.load()
}

func (s *CatalogScreen) Title() string {
	if s.mode == ModeOwned {
		return "My Courses"
	}
	return "Catalog"
}

func (s *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// load starts a list fetch under a fresh generation; results from
// superseded fetches are dropped in Update.
func (s *CatalogScreen) load() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""

	client := s.deps.Client
	mode := s.mode
	return func() tea.Msg {
		var (
			courses []api.Course
			err     error
		)
		if mode == ModeOwned {
			courses, err = client.MyCourses(context.Background())
		} else {
			courses, err = client.Catalog(context.Background())
		}
		return coursesLoadedMsg{Gen: gen, Courses: courses, Err: err}
	}
}

func (s *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			if api.IsNotFound(msg.Err) {
				s.courses = nil
				return s, nil
			}
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.courses = msg.Courses
		if s.selected >= len(s.courses) {
			s.selected = 0
			s.offset = 0
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.courses)-1 {
				s.selected++
			}
		case "r":
			return s, s.load()
		case "enter":
			if s.selected < len(s.courses) {
				c := s.courses[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: course.New(course.Deps{
						Client:  s.deps.Client,
						Session: s.deps.Session,
						Store:   s.deps.Store,
						Logger:  s.deps.Logger,
					}, c.ID, c.Name)}
				}
			}
		}
	}

	return s, nil
}

func (s *CatalogScreen) View(width, height int) string {
	if s.loading && len(s.courses) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("loading courses..."))
	}
	if s.errMsg != "" && len(s.courses) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			components.ErrorBanner(s.errMsg, width-8))
	}
	if len(s.courses) == 0 {
		empty := "No courses published yet."
		if s.mode == ModeOwned {
			empty = "You have not bought any courses yet."
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(empty))
	}

	rowsVisible := height - 2
	if rowsVisible < 1 {
		rowsVisible = 1
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rowsVisible {
		s.offset = s.selected - rowsVisible + 1
	}

	var b strings.Builder
	if s.errMsg != "" {
		b.WriteString(components.ErrorBanner(s.errMsg, width-4) + "\n")
	}

	end := s.offset + rowsVisible
	if end > len(s.courses) {
		end = len(s.courses)
	}
	for i := s.offset; i < end; i++ {
		b.WriteString(s.renderRow(s.courses[i], i == s.selected, width) + "\n")
	}
	return b.String()
}

func (s *CatalogScreen) renderRow(c api.Course, selected bool, width int) string {
	price := fmt.Sprintf("$%.2f", c.Price)
	if c.Price == 0 {
		price = "free"
	}
	meta := fmt.Sprintf("%s · %.1fh · %s", c.SenseiName, c.Hours, price)

	name := c.Name
	maxName := width - lipgloss.Width(meta) - 8
	if maxName > 0 && len(name) > maxName {
		name = name[:maxName-1] + "…"
	}

	line := fmt.Sprintf("  %-*s  %s", maxName, name, theme.Hint.Render(meta))
	if selected {
		return theme.Selected.Render("▸" + line[1:])
	}
	return theme.Unselected.Render(line)
}

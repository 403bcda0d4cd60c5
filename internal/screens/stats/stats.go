// Package stats shows the account-wide learning summary together with
// the locally logged recent lesson views.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

const recentLimit = 8

// Deps are the services the stats screen needs.
type Deps struct {
	Client *api.Client
	Store  *store.Store
	Logger *zap.Logger
}

// statsLoadedMsg carries the server stats, gen-fenced.
type statsLoadedMsg struct {
	Gen   uint64
	Stats *api.UserStats
	Err   error
}

// StatsScreen renders the learning summary.
type StatsScreen struct {
	deps Deps

	gen     uint64
	loading bool
	errMsg  string
	stats   *api.UserStats
	recent  []store.ViewRecord
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen.
func New(deps Deps) *StatsScreen {
	return &StatsScreen{deps: deps}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *StatsScreen) Title() string {
	return "My Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) load() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""

	if s.deps.Store != nil {
		recent, err := s.deps.Store.RecentViews(recentLimit)
		if err == nil {
			s.recent = recent
		} else if s.deps.Logger != nil {
			s.deps.Logger.Warn("recent views unavailable", zap.Error(err))
		}
	}

	client := s.deps.Client
	return func() tea.Msg {
		stats, err := client.Stats(context.Background())
		return statsLoadedMsg{Gen: gen, Stats: stats, Err: err}
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.stats = msg.Stats
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return s, s.load()
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.loading && s.stats == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("loading stats..."))
	}

	var b strings.Builder

	if s.errMsg != "" {
		b.WriteString(components.ErrorBanner(s.errMsg, 56) + "\n\n")
	}

	if st := s.stats; st != nil {
		b.WriteString(theme.Body.Bold(true).Render("Learning summary") + "\n\n")

		lessonPct := 0.0
		if st.TotalLessons > 0 {
			lessonPct = float64(st.CompletedLessons) / float64(st.TotalLessons)
		}
		bar := components.NewProgressBar("Lessons", lessonPct, true, 52)
		b.WriteString(bar.View() + "\n\n")

		b.WriteString(statLine("Courses", fmt.Sprintf("%d of %d completed", st.CompletedCourses, st.TotalCourses)))
		b.WriteString(statLine("Lessons", fmt.Sprintf("%d of %d completed", st.CompletedLessons, st.TotalLessons)))
		b.WriteString(statLine("Hours", fmt.Sprintf("%.1f", st.TotalHours)))
		if st.Rank != "" {
			b.WriteString(statLine("Rank", st.Rank))
		}
		if len(st.Achievements) > 0 {
			b.WriteString("\n" + theme.Body.Bold(true).Render("Achievements") + "\n")
			for _, a := range st.Achievements {
				b.WriteString(theme.Completed.Render("  ★ "+a) + "\n")
			}
		}
	}

	if len(s.recent) > 0 {
		b.WriteString("\n" + theme.Body.Bold(true).Render("Recently viewed") + "\n")
		for _, v := range s.recent {
			check := " "
			if v.Completed {
				check = "✓"
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				theme.Completed.Render(check),
				theme.Body.Render(v.Title),
				theme.Hint.Render(v.CreatedAt.Format("Jan 2 15:04"))))
		}
	}

	card := theme.Card.Width(60).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func statLine(label, value string) string {
	return fmt.Sprintf("%s  %s\n",
		theme.Hint.Render(fmt.Sprintf("%-8s", label)),
		theme.Body.Render(value))
}

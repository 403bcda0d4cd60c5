package course

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bytetechedu/bytetech/internal/content"
	"github.com/bytetechedu/bytetech/internal/forum"
	"github.com/bytetechedu/bytetech/internal/outline"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

var errEmptyThread = errors.New("both title and body are required")

func (s *CourseScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("loading course..."))
	}
	if s.errMsg != "" && s.info == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			components.ErrorBanner(s.errMsg, width-8))
	}
	if !s.paid {
		return s.renderBuyView(width, height)
	}

	navWidth := width / 4
	if navWidth < 26 {
		navWidth = 26
	}
	forumWidth := 0
	if s.showForum {
		forumWidth = width / 3
	}
	contentWidth := width - navWidth - forumWidth

	nav := s.renderNav(navWidth, height)
	main := s.renderContent(contentWidth, height)

	if !s.showForum {
		return lipgloss.JoinHorizontal(lipgloss.Top, nav, main)
	}
	panel := s.renderForum(forumWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, nav, main, panel)
}

func (s *CourseScreen) renderBuyView(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(56).Render(s.courseName) + "\n")
	if s.info != nil {
		b.WriteString(theme.Subtitle.Width(56).Render("by "+s.info.SenseiName) + "\n\n")
		b.WriteString(theme.Body.Width(56).Render(s.info.Description) + "\n\n")
		b.WriteString(theme.Mono.Render(fmt.Sprintf("$%.2f · %.1f hours", s.info.Price, s.info.Hours)) + "\n\n")
	}

	switch {
	case s.buying:
		b.WriteString(theme.Hint.Render("starting checkout..."))
	case s.purchase != nil:
		b.WriteString(theme.Body.Render("Open this link to finish your purchase:") + "\n")
		b.WriteString(theme.Mono.Render(s.purchase.CheckoutURL) + "\n")
	default:
		b.WriteString(theme.Hint.Render("You do not own this course yet. Press B to buy."))
	}

	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, 56))
	}

	card := theme.Card.Width(60).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *CourseScreen) renderNav(width, height int) string {
	inner := width - 4
	var b strings.Builder

	summary := s.tracker.Summary()
	bar := components.NewProgressBar("", summary.ProgressPercentage/100, true, inner)
	b.WriteString(bar.View() + "\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d/%d lessons", summary.CompletedLessons, summary.TotalLessons)) + "\n\n")

	rowsVisible := height - 7
	if rowsVisible < 3 {
		rowsVisible = 3
	}
	if s.cursor < s.navOffset {
		s.navOffset = s.cursor
	}
	if s.cursor >= s.navOffset+rowsVisible {
		s.navOffset = s.cursor - rowsVisible + 1
	}

	end := s.navOffset + rowsVisible
	if end > len(s.rows) {
		end = len(s.rows)
	}
	for i := s.navOffset; i < end; i++ {
		b.WriteString(s.renderNavRow(s.rows[i], i == s.cursor, inner) + "\n")
	}

	style := theme.Pane
	if s.focus == focusNav {
		style = theme.PaneActive
	}
	return style.Width(width - 2).Height(height - 2).Render(b.String())
}

func (s *CourseScreen) renderNavRow(r navRow, underCursor bool, width int) string {
	if r.section {
		return theme.Mono.Render(truncate(s.out.Sections[r.secIdx].Title, width))
	}

	l := s.lessonAt(r)
	icon := "▤"
	if l.Kind == outline.KindVideo {
		icon = "▶"
	}
	check := " "
	if s.tracker.Completed(l.ID, l.Completed) {
		check = "✓"
	}

	line := fmt.Sprintf(" %s %s %s", check, icon, truncate(l.Title, width-7))
	switch {
	case underCursor && s.focus == focusNav:
		return theme.Selected.Render("▸" + line)
	case s.hasCur && l.ID == s.current.ID:
		return theme.Completed.Render(" " + line)
	default:
		return theme.Unselected.Render(" " + line)
	}
}

func (s *CourseScreen) renderContent(width, height int) string {
	inner := width - 4
	var b strings.Builder

	if !s.hasCur {
		b.WriteString(theme.Hint.Render("Select a lesson to begin."))
	} else {
		l := s.current
		b.WriteString(theme.Body.Bold(true).Render(truncate(l.Title, inner)) + "\n")
		meta := string(l.Kind)
		if l.Duration != "" {
			meta += " · " + l.Duration
		}
		if s.tracker.Completed(l.ID, l.Completed) {
			meta += " · completed"
		}
		b.WriteString(theme.Hint.Render(meta) + "\n\n")
		b.WriteString(s.renderLessonBody(l, inner, height-8))
	}

	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, inner))
	}

	style := theme.Pane
	if s.focus == focusContent {
		style = theme.PaneActive
	}
	return style.Width(width - 2).Height(height - 2).Render(b.String())
}

func (s *CourseScreen) renderLessonBody(l outline.Lesson, width, height int) string {
	strategy := content.Select(l.FileID, l.MIMEType)
	switch strategy {
	case content.StrategyNone:
		return theme.Hint.Render("This lesson has no attached file.")

	case content.StrategyText:
		if s.preview.Loading {
			return theme.Hint.Render("loading text...")
		}
		if s.preview.Err != "" {
			return components.ErrorBanner("could not load text: "+s.preview.Err, width)
		}
		return theme.Body.Width(width).MaxHeight(height).Render(s.preview.Render())

	case content.StrategyVideo:
		return s.renderMediaRef(l, "Video lesson", "Open the stream in your media player:", width)
	case content.StrategyImage:
		return s.renderMediaRef(l, "Image", "Open the image in your browser:", width)
	case content.StrategyPDF:
		return s.renderMediaRef(l, "PDF document", "Open the document in your browser:", width)
	default:
		return s.renderMediaRef(l, "Attachment", "Download the file:", width)
	}
}

func (s *CourseScreen) renderMediaRef(l outline.Lesson, label, hint string, width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(label) + "\n")
	if l.MIMEType != "" {
		b.WriteString(theme.Hint.Render(l.MIMEType) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render(hint) + "\n")
	b.WriteString(theme.Mono.Width(width).Render(s.deps.Client.FileURL(l.FileID)))
	return b.String()
}

func (s *CourseScreen) renderForum(width, height int) string {
	inner := width - 4
	var b strings.Builder

	switch s.panel.CurrentView() {
	case forum.ViewCreate:
		b.WriteString(theme.Body.Bold(true).Render("New thread") + "\n\n")
		b.WriteString(s.threadTitle.View() + "\n\n")
		b.WriteString(s.threadBody.View() + "\n")

	case forum.ViewThread:
		if t := s.panel.Selected(); t != nil {
			b.WriteString(theme.Body.Bold(true).Render(truncate(t.Topic, inner)) + "\n\n")
		}
		if s.panel.LoadingMessages {
			b.WriteString(theme.Hint.Render("loading messages...") + "\n")
		}
		msgRows := height - 9
		entries := s.panel.Entries()
		start := 0
		if len(entries) > msgRows && msgRows > 0 {
			start = len(entries) - msgRows
		}
		for _, e := range entries[start:] {
			b.WriteString(s.renderEntry(e, inner) + "\n")
		}
		b.WriteString("\n" + s.msgInput.View() + "\n")

	default:
		b.WriteString(theme.Body.Bold(true).Render("Discussion") + "\n\n")
		threads := s.panel.Threads()
		switch {
		case s.panel.LoadingThreads:
			b.WriteString(theme.Hint.Render("loading threads...") + "\n")
		case len(threads) == 0:
			b.WriteString(theme.Hint.Render("No threads yet. Press N to start one.") + "\n")
		default:
			for i, t := range threads {
				line := truncate(t.Topic, inner-4) + "\n  " + theme.Hint.Render("by "+t.Username)
				if i == s.forumCursor && s.focus == focusForum {
					b.WriteString(theme.Selected.Render("▸ "+truncate(t.Topic, inner-4)) + "\n  " +
						theme.Hint.Render("by "+t.Username) + "\n")
				} else {
					b.WriteString("  " + theme.Unselected.Render(line) + "\n")
				}
			}
		}
		if s.confirmDeleteID != 0 {
			b.WriteString("\n" + theme.Warn.Width(inner).Render("Delete this thread? Press Y to confirm, Esc to cancel."))
		}
	}

	if s.panel.ErrBanner != "" {
		b.WriteString("\n" + components.ErrorBanner(s.panel.ErrBanner, inner))
	}

	style := theme.Pane
	if s.focus == focusForum {
		style = theme.PaneActive
	}
	return style.Width(width - 2).Height(height - 2).Render(b.String())
}

func (s *CourseScreen) renderEntry(e forum.Entry, width int) string {
	name := e.Message.Username
	if user := s.deps.Session.User(); user != nil && e.Message.UserID == user.ID {
		name = "you"
	}
	body := truncate(e.Message.Body, width-len(name)-3)
	line := theme.Mono.Render(name) + " " + theme.Body.Render(body)
	if e.Pending {
		return theme.Pending.Render(name + " " + body + " …")
	}
	return line
}

func truncate(s string, max int) string {
	if max <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

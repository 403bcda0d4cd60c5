package editor

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bytetechedu/bytetech/internal/outline"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *EditorScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("working..."))
	}

	switch s.mode {
	case modeMeta:
		return s.renderMetaForm(width, height)
	case modeStructure:
		return s.renderStructure(width, height)
	case modeLesson:
		return s.renderLessonForm(width, height)
	case modeGive:
		return s.renderGiveForm(width, height)
	default:
		return s.renderList(width, height)
	}
}

func (s *EditorScreen) renderList(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Body.Bold(true).Render("Your courses") + "\n\n")

	if len(s.courses) == 0 {
		b.WriteString(theme.Hint.Render("No courses yet. Press N to create one.") + "\n")
	}
	for i, c := range s.courses {
		line := fmt.Sprintf("%s  %s", c.Name,
			theme.Hint.Render(fmt.Sprintf("$%.2f · %.1fh", c.Price, c.Hours)))
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}

	if s.infoMsg != "" {
		b.WriteString("\n" + theme.Completed.Render(s.infoMsg))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, 56))
	}

	card := theme.Card.Width(64).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *EditorScreen) renderMetaForm(width, height int) string {
	labels := []string{"Name", "Description", "Price", "Hours"}
	title := "New course"
	if s.editingID != 0 {
		title = "Edit course"
	}
	return s.renderForm(width, height, title, labels, s.metaInputs)
}

func (s *EditorScreen) renderLessonForm(width, height int) string {
	labels := []string{"Title", "File ID", "MIME type", "Required viewing time"}
	return s.renderForm(width, height, "Add lesson", labels, s.lessonInputs)
}

func (s *EditorScreen) renderGiveForm(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Give "+s.openCourse.Name) + "\n\n")
	b.WriteString(theme.Body.Render("Recipient email") + "\n")
	b.WriteString(s.giveInput.View() + "\n")
	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, 56))
	}
	card := theme.Card.Width(64).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *EditorScreen) renderForm(width, height int, title string, labels []string, inputs []components.TextInput) string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(title) + "\n\n")
	for i, label := range labels {
		b.WriteString(theme.Body.Render(label) + "\n")
		b.WriteString(inputs[i].View() + "\n\n")
	}
	if s.errMsg != "" {
		b.WriteString(components.ErrorBanner(s.errMsg, 56))
	}
	card := theme.Card.Width(64).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *EditorScreen) renderStructure(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Body.Bold(true).Render(s.openCourse.Name) + "\n\n")

	if len(s.rows) == 0 {
		b.WriteString(theme.Hint.Render("No sections yet. Press S to add one.") + "\n")
	}
	for i, r := range s.rows {
		var line string
		if r.section {
			line = theme.Mono.Render(s.out.Sections[r.secIdx].Title)
		} else {
			l := s.out.Sections[r.secIdx].Lessons[r.lesIdx]
			icon := "▤"
			if l.Kind == outline.KindVideo {
				icon = "▶"
			}
			line = fmt.Sprintf("  %s %s", icon, l.Title)
		}
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n" + components.ErrorBanner(s.errMsg, 56))
	}

	card := theme.Card.Width(64).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

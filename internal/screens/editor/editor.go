// Package editor is the sensei workbench: create and delete courses,
// edit their metadata, manage sections and lessons, and grant access
// to other accounts.
package editor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/outline"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
)

type mode int

const (
	// modeList shows the sensei's own courses.
	modeList mode = iota
	// modeMeta is the create/edit metadata form.
	modeMeta
	// modeStructure shows one course's sections and lessons.
	modeStructure
	// modeLesson is the add-lesson form.
	modeLesson
	// modeGive is the grant-access form.
	modeGive
)

// Deps are the services the workbench needs.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Logger  *zap.Logger
}

// structRow is one row of the structure view.
type structRow struct {
	section bool
	secIdx  int
	lesIdx  int
}

// EditorScreen is the course workbench.
type EditorScreen struct {
	deps Deps
	mode mode

	gen     uint64
	loading bool
	errMsg  string
	infoMsg string

	courses  []api.Course
	selected int

	// metadata form
	metaInputs  []components.TextInput
	metaFocused int
	editingID   int // 0 means creating

	// structure view
	openCourse api.Course
	out        outline.Outline
	rows       []structRow
	cursor     int

	// add-lesson form
	lessonInputs  []components.TextInput
	lessonFocused int
	targetSection int

	// give form
	giveInput components.TextInput
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New creates the workbench in list mode.
func New(deps Deps) *EditorScreen {
	return &EditorScreen{deps: deps}
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.loadCourses()
}

func (s *EditorScreen) Title() string {
	switch s.mode {
	case modeMeta:
		if s.editingID == 0 {
			return "Workbench · New Course"
		}
		return "Workbench · Edit Course"
	case modeStructure:
		return "Workbench · " + s.openCourse.Name
	case modeLesson:
		return "Workbench · Add Lesson"
	case modeGive:
		return "Workbench · Give Course"
	default:
		return "Workbench"
	}
}

// ConsumesEsc keeps esc for leaving sub-modes back to the course list.
func (s *EditorScreen) ConsumesEsc() bool {
	return s.mode != modeList
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeMeta, modeLesson, modeGive:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeStructure:
		return []layout.KeyHint{
			{Key: "S", Description: "New section"},
			{Key: "A", Description: "Add lesson"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Courses"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "N", Description: "New"},
			{Key: "E", Description: "Edit"},
			{Key: "G", Description: "Give"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// loadCourses fetches the catalog and keeps only this sensei's courses.
func (s *EditorScreen) loadCourses() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""

	client := s.deps.Client
	user := s.deps.Session.User()
	return func() tea.Msg {
		all, err := client.Catalog(context.Background())
		if err != nil {
			return coursesLoadedMsg{Gen: gen, Err: err}
		}
		var mine []api.Course
		for _, c := range all {
			if user != nil && c.SenseiID == user.ID {
				mine = append(mine, c)
			}
		}
		return coursesLoadedMsg{Gen: gen, Courses: mine, Err: nil}
	}
}

func (s *EditorScreen) loadStructure(courseID int) tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""

	client := s.deps.Client
	return func() tea.Msg {
		resp, err := client.CourseContent(context.Background(), courseID)
		return structureLoadedMsg{Gen: gen, Resp: resp, Err: err}
	}
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil && !api.IsNotFound(msg.Err) {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.courses = msg.Courses
		if s.selected >= len(s.courses) {
			s.selected = 0
		}
		return s, nil

	case structureLoadedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.mode = modeList
			return s, nil
		}
		s.out = outline.Hydrate(&msg.Resp.Content)
		s.buildRows()
		s.mode = modeStructure
		return s, nil

	case courseSavedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Created {
			s.infoMsg = "course created"
		} else {
			s.infoMsg = "metadata saved"
		}
		s.mode = modeList
		return s, s.loadCourses()

	case courseDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.infoMsg = "course deleted"
		return s, s.loadCourses()

	case sectionChangedMsg, lessonChangedMsg:
		var err error
		switch m := msg.(type) {
		case sectionChangedMsg:
			err = m.Err
		case lessonChangedMsg:
			err = m.Err
		}
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.loadStructure(s.openCourse.ID)

	case giveDoneMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.infoMsg = "course granted to " + msg.Email
		s.mode = modeList
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *EditorScreen) buildRows() {
	s.rows = s.rows[:0]
	for i, sec := range s.out.Sections {
		s.rows = append(s.rows, structRow{section: true, secIdx: i})
		for j := range sec.Lessons {
			s.rows = append(s.rows, structRow{secIdx: i, lesIdx: j})
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = 0
	}
}

func (s *EditorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.loading {
		return s, nil
	}
	switch s.mode {
	case modeList:
		return s.handleListKey(msg)
	case modeMeta:
		return s.handleMetaKey(msg)
	case modeStructure:
		return s.handleStructureKey(msg)
	case modeLesson:
		return s.handleLessonKey(msg)
	case modeGive:
		return s.handleGiveKey(msg)
	}
	return s, nil
}

func (s *EditorScreen) handleListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.courses)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(s.courses) {
			s.openCourse = s.courses[s.selected]
			return s, s.loadStructure(s.openCourse.ID)
		}
	case "n":
		s.openMetaForm(nil)
		return s, s.metaInputs[0].Focus()
	case "e":
		if s.selected < len(s.courses) {
			c := s.courses[s.selected]
			s.openMetaForm(&c)
			return s, s.metaInputs[0].Focus()
		}
	case "g":
		if s.selected < len(s.courses) {
			s.openCourse = s.courses[s.selected]
			s.giveInput = components.NewTextInput("student@example.com", 128)
			s.mode = modeGive
			s.errMsg = ""
			return s, s.giveInput.Focus()
		}
	case "d":
		if s.selected < len(s.courses) {
			c := s.courses[s.selected]
			client := s.deps.Client
			return s, func() tea.Msg {
				err := client.DeleteCourse(context.Background(), c.ID)
				return courseDeletedMsg{CourseID: c.ID, Err: err}
			}
		}
	case "r":
		return s, s.loadCourses()
	}
	return s, nil
}

// openMetaForm prepares the metadata form, prefilled when editing.
func (s *EditorScreen) openMetaForm(c *api.Course) {
	s.metaInputs = []components.TextInput{
		components.NewTextInput("course name", 128),
		components.NewTextInput("description", 512),
		components.NewTextInput("price, e.g. 49.99", 16),
		components.NewTextInput("hours, e.g. 12.5", 16),
	}
	s.metaFocused = 0
	s.errMsg = ""
	s.infoMsg = ""
	if c == nil {
		s.editingID = 0
	} else {
		s.editingID = c.ID
		s.metaInputs[0].SetValue(c.Name)
		s.metaInputs[1].SetValue(c.Description)
		s.metaInputs[2].SetValue(trimFloat(c.Price))
		s.metaInputs[3].SetValue(trimFloat(c.Hours))
	}
	s.mode = modeMeta
}

func (s *EditorScreen) handleMetaKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		return s, nil
	case "tab", "down":
		return s, s.focusMeta(s.metaFocused + 1)
	case "shift+tab", "up":
		return s, s.focusMeta(s.metaFocused - 1)
	case "ctrl+s":
		return s, s.saveMeta()
	}

	var cmd tea.Cmd
	s.metaInputs[s.metaFocused], cmd = s.metaInputs[s.metaFocused].Update(msg)
	return s, cmd
}

func (s *EditorScreen) focusMeta(i int) tea.Cmd {
	n := len(s.metaInputs)
	i = ((i % n) + n) % n
	s.metaInputs[s.metaFocused].Blur()
	s.metaFocused = i
	return s.metaInputs[i].Focus()
}

func (s *EditorScreen) saveMeta() tea.Cmd {
	meta := api.CourseMetadata{
		Name:        strings.TrimSpace(s.metaInputs[0].Value()),
		Description: strings.TrimSpace(s.metaInputs[1].Value()),
		Price:       strings.TrimSpace(s.metaInputs[2].Value()),
		Hours:       strings.TrimSpace(s.metaInputs[3].Value()),
	}
	if s.editingID == 0 && meta.Name == "" {
		s.errMsg = "a course needs a name"
		return nil
	}

	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	editingID := s.editingID
	return func() tea.Msg {
		if editingID == 0 {
			id, err := client.NewCourse(context.Background(), meta)
			return courseSavedMsg{CourseID: id, Created: true, Err: err}
		}
		err := client.EditMetadata(context.Background(), editingID, meta)
		return courseSavedMsg{CourseID: editingID, Err: err}
	}
}

func (s *EditorScreen) handleStructureKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		return s, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "s":
		client := s.deps.Client
		courseID := s.openCourse.ID
		return s, func() tea.Msg {
			_, err := client.NewSection(context.Background(), courseID)
			return sectionChangedMsg{Err: err}
		}
	case "a":
		if s.cursor < len(s.rows) {
			r := s.rows[s.cursor]
			s.targetSection = s.out.Sections[r.secIdx].ID
			s.openLessonForm()
			return s, s.lessonInputs[0].Focus()
		}
	case "d":
		if s.cursor < len(s.rows) {
			return s, s.deleteAtCursor(s.rows[s.cursor])
		}
	case "r":
		return s, s.loadStructure(s.openCourse.ID)
	}
	return s, nil
}

func (s *EditorScreen) deleteAtCursor(r structRow) tea.Cmd {
	client := s.deps.Client
	if r.section {
		sectionID := s.out.Sections[r.secIdx].ID
		return func() tea.Msg {
			err := client.DeleteSection(context.Background(), sectionID)
			return sectionChangedMsg{Err: err}
		}
	}
	l := s.out.Sections[r.secIdx].Lessons[r.lesIdx]
	return func() tea.Msg {
		err := client.DeleteLesson(context.Background(), l.FileID, l.ID)
		return lessonChangedMsg{Err: err}
	}
}

func (s *EditorScreen) openLessonForm() {
	s.lessonInputs = []components.TextInput{
		components.NewTextInput("lesson title", 128),
		components.NewTextInput("uploaded file id", 64),
		components.NewTextInput("mime type, e.g. video/mp4", 64),
		components.NewTextInput("required time, minutes.seconds", 8),
	}
	s.lessonFocused = 0
	s.errMsg = ""
	s.mode = modeLesson
}

func (s *EditorScreen) handleLessonKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeStructure
		return s, nil
	case "tab", "down":
		return s, s.focusLesson(s.lessonFocused + 1)
	case "shift+tab", "up":
		return s, s.focusLesson(s.lessonFocused - 1)
	case "ctrl+s":
		title := strings.TrimSpace(s.lessonInputs[0].Value())
		if title == "" {
			s.errMsg = "a lesson needs a title"
			return s, nil
		}
		in := api.AddLessonInput{
			SectionID:     s.targetSection,
			Title:         title,
			FileID:        strings.TrimSpace(s.lessonInputs[1].Value()),
			MIMEType:      strings.TrimSpace(s.lessonInputs[2].Value()),
			TimeValidator: strings.TrimSpace(s.lessonInputs[3].Value()),
		}
		client := s.deps.Client
		return s, func() tea.Msg {
			_, err := client.AddLesson(context.Background(), in)
			return lessonChangedMsg{Err: err}
		}
	}

	var cmd tea.Cmd
	s.lessonInputs[s.lessonFocused], cmd = s.lessonInputs[s.lessonFocused].Update(msg)
	return s, cmd
}

func (s *EditorScreen) focusLesson(i int) tea.Cmd {
	n := len(s.lessonInputs)
	i = ((i % n) + n) % n
	s.lessonInputs[s.lessonFocused].Blur()
	s.lessonFocused = i
	return s.lessonInputs[i].Focus()
}

func (s *EditorScreen) handleGiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		return s, nil
	case "enter", "ctrl+s":
		email := strings.TrimSpace(s.giveInput.Value())
		if email == "" {
			s.errMsg = "enter the recipient's email"
			return s, nil
		}
		s.loading = true
		s.errMsg = ""
		client := s.deps.Client
		courseID := s.openCourse.ID
		return s, func() tea.Msg {
			err := client.GiveCourse(context.Background(), courseID, email)
			return giveDoneMsg{Email: email, Err: err}
		}
	}

	var cmd tea.Cmd
	s.giveInput, cmd = s.giveInput.Update(msg)
	return s, cmd
}

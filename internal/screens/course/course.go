// Package course is the lesson viewer: a navigator over the course's
// sections, a content pane for the selected lesson, and the per-lesson
// discussion panel. Completion is driven by a dwell timer that fires
// after the lesson's required viewing time.
package course

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/content"
	"github.com/bytetechedu/bytetech/internal/forum"
	"github.com/bytetechedu/bytetech/internal/outline"
	"github.com/bytetechedu/bytetech/internal/progress"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
)

type focusArea int

const (
	focusNav focusArea = iota
	focusContent
	focusForum
)

// navRow is one row of the navigator: a section header or a lesson.
type navRow struct {
	section bool
	secIdx  int
	lesIdx  int
}

// Deps are the services the viewer needs.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Store   *store.Store
	Logger  *zap.Logger
}

// CourseScreen is the per-course viewer.
type CourseScreen struct {
	deps       Deps
	courseID   int
	courseName string

	loadGen uint64
	loading bool
	errMsg  string

	// purchase state
	paid     bool
	info     *api.CourseContent
	buying   bool
	purchase *api.PurchaseResult

	// viewer state
	out     outline.Outline
	tracker *progress.Tracker
	preview content.Preview
	current outline.Lesson
	hasCur  bool

	rows      []navRow
	cursor    int
	navOffset int

	focus     focusArea
	showForum bool

	// forum state
	panel           *forum.Panel
	forumCursor     int
	confirmDeleteID int
	threadTitle     components.TextInput
	threadBody      components.TextArea
	msgInput        components.TextInput
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)

// New creates a viewer for one course. Content loads on Init.
func New(deps Deps, courseID int, courseName string) *CourseScreen {
	return &CourseScreen{
		deps:        deps,
		courseID:    courseID,
		courseName:  courseName,
		panel:       forum.NewPanel(),
		threadTitle: components.NewTextInput("thread title", 128),
		threadBody:  components.NewTextArea("what do you want to ask?", 40, 5),
		msgInput:    components.NewTextInput("write a message...", 512),
	}
}

func (s *CourseScreen) Init() tea.Cmd {
	return s.loadContent()
}

func (s *CourseScreen) Title() string {
	return s.courseName
}

// ConsumesEsc keeps esc inside the forum panel while a thread, the
// create form, or a delete confirmation is open, so backing out of
// those does not pop the screen.
func (s *CourseScreen) ConsumesEsc() bool {
	if s.focus != focusForum {
		return false
	}
	return s.panel.CurrentView() != forum.ViewThreads || s.confirmDeleteID != 0
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	if !s.paid {
		return []layout.KeyHint{
			{Key: "B", Description: "Buy"},
			{Key: "Esc", Description: "Back"},
		}
	}
	switch s.focus {
	case focusForum:
		switch s.panel.CurrentView() {
		case forum.ViewCreate:
			return []layout.KeyHint{
				{Key: "Tab", Description: "Title/body"},
				{Key: "Ctrl+S", Description: "Post"},
				{Key: "Esc", Description: "Cancel"},
			}
		case forum.ViewThread:
			return []layout.KeyHint{
				{Key: "Enter", Description: "Send"},
				{Key: "Esc", Description: "Threads"},
			}
		default:
			if s.confirmDeleteID != 0 {
				return []layout.KeyHint{
					{Key: "Y", Description: "Confirm delete"},
					{Key: "Esc", Description: "Cancel"},
				}
			}
			hints := []layout.KeyHint{
				{Key: "Enter", Description: "Open thread"},
				{Key: "N", Description: "New thread"},
			}
			if s.deps.Session.IsSensei() {
				hints = append(hints, layout.KeyHint{Key: "D", Description: "Delete"})
			}
			return append(hints, layout.KeyHint{Key: "Tab", Description: "Focus"})
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Lessons"},
			{Key: "Enter", Description: "Open"},
			{Key: "M", Description: "Toggle done"},
			{Key: "F", Description: "Forum"},
			{Key: "Tab", Description: "Focus"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// loadContent fetches the course payload under a fresh generation.
func (s *CourseScreen) loadContent() tea.Cmd {
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	s.errMsg = ""

	client := s.deps.Client
	courseID := s.courseID
	return func() tea.Msg {
		resp, err := client.CourseContent(context.Background(), courseID)
		return contentLoadedMsg{Gen: gen, Resp: resp, Err: err}
	}
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentLoadedMsg:
		return s.handleContentLoaded(msg)
	case previewLoadedMsg:
		s.preview.Apply(msg.Gen, msg.Body, msg.Err)
		return s, nil
	case dwellElapsedMsg:
		return s.handleDwellElapsed(msg)
	case markDoneMsg:
		return s.handleMarkDone(msg)
	case buyDoneMsg:
		s.buying = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.purchase = msg.Result
		return s, nil

	case threadsLoadedMsg:
		s.panel.ApplyThreads(msg.Gen, msg.Threads, msg.Err)
		if s.forumCursor >= len(s.panel.Threads()) {
			s.forumCursor = 0
		}
		return s, nil
	case messagesLoadedMsg:
		s.panel.ApplyMessages(msg.Gen, msg.Messages, msg.Err)
		return s, nil
	case threadCreatedMsg:
		if msg.Err != nil {
			s.panel.ThreadCreateFailed(msg.Err)
			return s, nil
		}
		s.threadTitle.Reset()
		s.threadBody.Reset()
		gen := s.panel.ThreadCreated()
		return s, s.fetchThreads(gen)
	case messageSentMsg:
		if msg.Err != nil {
			s.panel.FailPending(msg.TempID, msg.Err)
		} else {
			s.panel.ConfirmPending(msg.TempID, msg.ServerID)
		}
		return s, nil
	case threadDeletedMsg:
		if msg.Err != nil {
			s.panel.DeleteFailed(msg.Err)
			return s, nil
		}
		gen := s.panel.ThreadDeleted(msg.ThreadID)
		return s, s.fetchThreads(gen)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *CourseScreen) handleContentLoaded(msg contentLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.loadGen {
		return s, nil
	}
	s.loading = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.info = &msg.Resp.Content
	s.courseName = msg.Resp.Content.Name
	s.paid = msg.Resp.IsPaid == nil || *msg.Resp.IsPaid
	if !s.paid {
		return s, nil
	}

	s.out = outline.Hydrate(&msg.Resp.Content)
	s.tracker = progress.NewTracker(msg.Resp.Content.Progress)
	s.buildRows()

	if first, ok := outline.FirstSelectable(s.out); ok {
		s.cursorToLesson(first.ID)
		return s, s.selectLesson(first)
	}
	return s, nil
}

// buildRows flattens the outline into navigator rows.
func (s *CourseScreen) buildRows() {
	s.rows = s.rows[:0]
	for i, sec := range s.out.Sections {
		s.rows = append(s.rows, navRow{section: true, secIdx: i})
		for j := range sec.Lessons {
			s.rows = append(s.rows, navRow{secIdx: i, lesIdx: j})
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = 0
	}
}

func (s *CourseScreen) cursorToLesson(lessonID string) {
	for i, r := range s.rows {
		if !r.section && s.lessonAt(r).ID == lessonID {
			s.cursor = i
			return
		}
	}
}

func (s *CourseScreen) lessonAt(r navRow) *outline.Lesson {
	return &s.out.Sections[r.secIdx].Lessons[r.lesIdx]
}

// selectLesson switches the viewer to a lesson: pick the content
// strategy, start the preview fetch when one is needed, rearm the
// dwell timer, rescope the forum panel, and log the view locally.
func (s *CourseScreen) selectLesson(l outline.Lesson) tea.Cmd {
	s.current = l
	s.hasCur = true

	var cmds []tea.Cmd

	strategy := content.Select(l.FileID, l.MIMEType)
	if strategy.NeedsFetch() {
		ctx, gen := s.preview.Begin(context.Background())
		client := s.deps.Client
		fileID := l.FileID
		cmds = append(cmds, func() tea.Msg {
			body, _, err := client.FetchFile(ctx, fileID)
			return previewLoadedMsg{Gen: gen, Body: string(body), Err: err}
		})
	} else {
		s.preview.Reset()
	}

	completed := s.tracker.Completed(l.ID, l.Completed)
	dwell := progress.ParseDwell(l.DwellSpec)
	if gen, ok := s.tracker.Arm(l.ID, l.Completed, dwell); ok {
		lessonID := l.ID
		cmds = append(cmds, tea.Tick(dwell, func(time.Time) tea.Msg {
			return dwellElapsedMsg{Gen: gen, LessonID: lessonID}
		}))
	}

	s.confirmDeleteID = 0
	fgen := s.panel.Reset(l.ID)
	cmds = append(cmds, s.fetchThreads(fgen))

	if s.deps.Store != nil {
		_ = s.deps.Store.AppendView(&store.ViewRecord{
			CourseID:  s.courseID,
			LessonID:  l.ID,
			Title:     l.Title,
			Completed: completed,
		})
	}

	return tea.Batch(cmds...)
}

func (s *CourseScreen) handleDwellElapsed(msg dwellElapsedMsg) (screen.Screen, tea.Cmd) {
	if s.tracker == nil || !s.tracker.Live(msg.Gen) {
		return s, nil
	}
	client := s.deps.Client
	lessonID := msg.LessonID
	return s, func() tea.Msg {
		err := client.MarkProgress(context.Background(), lessonID)
		return markDoneMsg{LessonID: lessonID, Err: err}
	}
}

func (s *CourseScreen) handleMarkDone(msg markDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// the dwell timer fails silently; only a manual toggle surfaces
		if msg.Manual {
			s.errMsg = "could not update progress: " + msg.Err.Error()
		}
		if s.deps.Logger != nil {
			s.deps.Logger.Warn("progress update failed",
				zap.String("lesson", msg.LessonID), zap.Error(msg.Err))
		}
		return s, nil
	}

	if msg.Unmark {
		s.tracker.Uncomplete(msg.LessonID)
	} else {
		s.tracker.Complete(msg.LessonID)
	}
	s.setLessonCompleted(msg.LessonID, !msg.Unmark)

	if !msg.Unmark && s.deps.Store != nil {
		_ = s.deps.Store.MarkViewCompleted(msg.LessonID)
	}
	return s, nil
}

func (s *CourseScreen) setLessonCompleted(lessonID string, v bool) {
	for i := range s.out.Sections {
		for j := range s.out.Sections[i].Lessons {
			if s.out.Sections[i].Lessons[j].ID == lessonID {
				s.out.Sections[i].Lessons[j].Completed = v
				if s.current.ID == lessonID {
					s.current.Completed = v
				}
				return
			}
		}
	}
}

func (s *CourseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.loading {
		return s, nil
	}

	if !s.paid {
		if msg.String() == "b" && !s.buying && s.purchase == nil {
			return s, s.buy()
		}
		return s, nil
	}

	switch msg.String() {
	case "tab":
		if s.focus == focusForum && s.panel.CurrentView() != forum.ViewThreads {
			break // the forum's own inputs keep tab
		}
		s.cycleFocus()
		return s, nil
	case "f":
		if s.focus != focusForum {
			s.showForum = !s.showForum
			return s, nil
		}
	}

	switch s.focus {
	case focusNav:
		return s.handleNavKey(msg)
	case focusForum:
		return s.handleForumKey(msg)
	}
	return s, nil
}

func (s *CourseScreen) cycleFocus() {
	switch s.focus {
	case focusNav:
		s.focus = focusContent
	case focusContent:
		if s.showForum {
			s.focus = focusForum
		} else {
			s.focus = focusNav
		}
	case focusForum:
		s.focus = focusNav
		s.blurForumInputs()
	}
}

func (s *CourseScreen) buy() tea.Cmd {
	user := s.deps.Session.User()
	if user == nil {
		return nil
	}
	s.buying = true
	s.errMsg = ""
	client := s.deps.Client
	courseID := s.courseID
	email := user.Email
	return func() tea.Msg {
		result, err := client.BuyCourse(context.Background(), courseID, email)
		return buyDoneMsg{Result: result, Err: err}
	}
}

func (s *CourseScreen) handleNavKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		for i := s.cursor - 1; i >= 0; i-- {
			if !s.rows[i].section {
				s.cursor = i
				break
			}
		}
	case "down", "j":
		for i := s.cursor + 1; i < len(s.rows); i++ {
			if !s.rows[i].section {
				s.cursor = i
				break
			}
		}
	case "enter":
		if s.cursor < len(s.rows) && !s.rows[s.cursor].section {
			l := *s.lessonAt(s.rows[s.cursor])
			if outline.Selectable(l) {
				return s, s.selectLesson(l)
			}
		}
	case "m":
		if s.cursor < len(s.rows) && !s.rows[s.cursor].section {
			l := s.lessonAt(s.rows[s.cursor])
			return s, s.toggleProgress(*l)
		}
	}
	return s, nil
}

func (s *CourseScreen) toggleProgress(l outline.Lesson) tea.Cmd {
	client := s.deps.Client
	lessonID := l.ID
	if s.tracker.Completed(l.ID, l.Completed) {
		return func() tea.Msg {
			err := client.UnmarkProgress(context.Background(), lessonID)
			return markDoneMsg{LessonID: lessonID, Unmark: true, Manual: true, Err: err}
		}
	}
	// manual completion also cancels any pending dwell timer
	s.tracker.Disarm()
	return func() tea.Msg {
		err := client.MarkProgress(context.Background(), lessonID)
		return markDoneMsg{LessonID: lessonID, Manual: true, Err: err}
	}
}

func (s *CourseScreen) fetchThreads(gen uint64) tea.Cmd {
	client := s.deps.Client
	lessonID := s.panel.LessonID
	return func() tea.Msg {
		threads, err := client.ThreadsForLesson(context.Background(), lessonID)
		return threadsLoadedMsg{Gen: gen, Threads: threads, Err: err}
	}
}

func (s *CourseScreen) fetchMessages(gen uint64, threadID int) tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		msgs, err := client.MessagesForThread(context.Background(), threadID)
		return messagesLoadedMsg{Gen: gen, Messages: msgs, Err: err}
	}
}

func (s *CourseScreen) blurForumInputs() {
	s.threadTitle.Blur()
	s.threadBody.Blur()
	s.msgInput.Blur()
}

func (s *CourseScreen) handleForumKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.panel.CurrentView() {
	case forum.ViewThreads:
		return s.handleThreadListKey(msg)
	case forum.ViewCreate:
		return s.handleCreateKey(msg)
	case forum.ViewThread:
		return s.handleThreadKey(msg)
	}
	return s, nil
}

func (s *CourseScreen) handleThreadListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	threads := s.panel.Threads()
	switch msg.String() {
	case "esc":
		s.confirmDeleteID = 0
	case "up", "k":
		s.confirmDeleteID = 0
		if s.forumCursor > 0 {
			s.forumCursor--
		}
	case "down", "j":
		s.confirmDeleteID = 0
		if s.forumCursor < len(threads)-1 {
			s.forumCursor++
		}
	case "enter":
		s.confirmDeleteID = 0
		if s.forumCursor < len(threads) {
			t := threads[s.forumCursor]
			gen := s.panel.SelectThread(t)
			return s, tea.Batch(s.fetchMessages(gen, t.ID), s.msgInput.Focus())
		}
	case "n":
		s.confirmDeleteID = 0
		s.panel.OpenCreate()
		return s, s.threadTitle.Focus()
	case "d":
		// thread moderation is a sensei power
		if !s.deps.Session.IsSensei() || s.forumCursor >= len(threads) {
			return s, nil
		}
		t := threads[s.forumCursor]
		if s.confirmDeleteID == t.ID {
			return s, s.deleteThread(t.ID)
		}
		s.confirmDeleteID = t.ID
	case "y":
		if s.confirmDeleteID != 0 && s.deps.Session.IsSensei() {
			return s, s.deleteThread(s.confirmDeleteID)
		}
	case "x":
		s.panel.DismissError()
	}
	return s, nil
}

func (s *CourseScreen) deleteThread(threadID int) tea.Cmd {
	s.confirmDeleteID = 0
	client := s.deps.Client
	return func() tea.Msg {
		err := client.DeleteThread(context.Background(), threadID)
		return threadDeletedMsg{ThreadID: threadID, Err: err}
	}
}

func (s *CourseScreen) handleCreateKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.panel.BackToThreads()
		s.blurForumInputs()
		return s, nil
	case "tab":
		if s.threadTitle.Focused() {
			s.threadTitle.Blur()
			return s, s.threadBody.Focus()
		}
		s.threadBody.Blur()
		return s, s.threadTitle.Focus()
	case "ctrl+s":
		title := s.threadTitle.Value()
		body := s.threadBody.Value()
		if !forum.CanSubmitThread(title, body) {
			s.panel.ThreadCreateFailed(errEmptyThread)
			return s, nil
		}
		topic := forum.ComposeTopic(title, body)
		client := s.deps.Client
		lessonID := s.panel.LessonID
		return s, func() tea.Msg {
			err := client.CreateThread(context.Background(), lessonID, topic)
			return threadCreatedMsg{Err: err}
		}
	}

	var cmd tea.Cmd
	if s.threadTitle.Focused() {
		s.threadTitle, cmd = s.threadTitle.Update(msg)
	} else {
		s.threadBody, cmd = s.threadBody.Update(msg)
	}
	return s, cmd
}

func (s *CourseScreen) handleThreadKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.panel.BackToThreads()
		s.blurForumInputs()
		return s, nil
	case "enter":
		body := s.msgInput.Value()
		if strings.TrimSpace(body) == "" || s.panel.Sending {
			return s, nil
		}
		user := s.deps.Session.User()
		if user == nil {
			return s, nil
		}
		selected := s.panel.Selected()
		if selected == nil {
			return s, nil
		}
		tempID := s.panel.AppendPending(*user, body)
		s.msgInput.Reset()
		client := s.deps.Client
		threadID := selected.ID
		return s, tea.Batch(s.msgInput.Focus(), func() tea.Msg {
			serverID, err := client.SendMessage(context.Background(), threadID, body)
			return messageSentMsg{TempID: tempID, ServerID: serverID, Err: err}
		})
	}

	var cmd tea.Cmd
	s.msgInput, cmd = s.msgInput.Update(msg)
	return s, cmd
}

// Package forum holds the state machine behind the per-lesson
// discussion panel: thread list, thread creation, and the message view
// with optimistic sends.
package forum

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bytetechedu/bytetech/internal/api"
)

// View is the panel's current face.
type View int

const (
	// ViewThreads lists the selected lesson's threads.
	ViewThreads View = iota
	// ViewCreate shows the new-thread form.
	ViewCreate
	// ViewThread shows a single thread and its messages.
	ViewThread
)

// Entry is a message row. While Pending is set the message exists only
// locally, keyed by TempID until the server assigns a real identifier.
// The tag replaces the original client's negative-id convention.
type Entry struct {
	Message api.Message
	Pending bool
	TempID  string
}

// Panel is the forum panel for one selected lesson. All mutation
// happens on the UI goroutine; async results re-enter through the
// Apply methods carrying the generation they were issued under, and
// stale generations are discarded.
type Panel struct {
	LessonID string

	view     View
	gen      uint64
	threads  []api.Thread
	selected *api.Thread
	entries  []Entry

	LoadingThreads  bool
	LoadingMessages bool
	Sending         bool
	ErrBanner       string
}

// NewPanel returns an empty panel in the thread-list view.
func NewPanel() *Panel {
	return &Panel{}
}

// CurrentView returns the panel's current face.
func (p *Panel) CurrentView() View { return p.view }

// Threads returns the loaded thread list.
func (p *Panel) Threads() []api.Thread { return p.threads }

// Selected returns the open thread, or nil.
func (p *Panel) Selected() *api.Thread { return p.selected }

// Entries returns the message rows of the open thread.
func (p *Panel) Entries() []Entry { return p.entries }

// Reset scopes the panel to a newly selected lesson: back to the
// thread list, previous lesson's threads and messages dropped, any
// in-flight results fenced off. Returns the generation for the initial
// threads fetch.
func (p *Panel) Reset(lessonID string) uint64 {
	p.LessonID = lessonID
	p.view = ViewThreads
	p.threads = nil
	p.selected = nil
	p.entries = nil
	p.ErrBanner = ""
	p.LoadingMessages = false
	p.Sending = false
	return p.beginThreadsLoad()
}

// BeginThreadsLoad marks the thread list loading and opens a new
// result generation.
func (p *Panel) BeginThreadsLoad() uint64 {
	return p.beginThreadsLoad()
}

func (p *Panel) beginThreadsLoad() uint64 {
	p.gen++
	p.LoadingThreads = true
	p.ErrBanner = ""
	return p.gen
}

// ApplyThreads merges a thread-list result. A NotFound error is a
// valid empty list; other errors raise the banner. Stale generations
// return false and change nothing.
func (p *Panel) ApplyThreads(gen uint64, threads []api.Thread, err error) bool {
	if gen != p.gen {
		return false
	}
	p.LoadingThreads = false
	switch {
	case err == nil:
		p.threads = threads
	case api.IsNotFound(err):
		p.threads = nil
	default:
		p.ErrBanner = "could not load threads: " + err.Error()
	}
	return true
}

// OpenCreate switches to the new-thread form.
func (p *Panel) OpenCreate() {
	p.view = ViewCreate
	p.ErrBanner = ""
}

// BackToThreads returns to the thread list without reloading.
func (p *Panel) BackToThreads() {
	p.view = ViewThreads
	p.selected = nil
	p.entries = nil
}

// CanSubmitThread requires both a non-empty title and body.
func CanSubmitThread(title, body string) bool {
	return strings.TrimSpace(title) != "" && strings.TrimSpace(body) != ""
}

// ComposeTopic folds the form's title and body into the single stored
// topic string the backend expects.
func ComposeTopic(title, body string) string {
	return title + ": " + body
}

// ThreadCreated handles a successful create: back to the list and
// reload. Returns the generation for the reload fetch.
func (p *Panel) ThreadCreated() uint64 {
	p.view = ViewThreads
	return p.beginThreadsLoad()
}

// ThreadCreateFailed raises the banner; the form keeps its input.
func (p *Panel) ThreadCreateFailed(err error) {
	p.LoadingThreads = false
	p.ErrBanner = "could not create thread: " + err.Error()
}

// SelectThread opens a thread and begins its message load, returning
// the fetch generation.
func (p *Panel) SelectThread(t api.Thread) uint64 {
	p.view = ViewThread
	p.selected = &t
	p.entries = nil
	p.gen++
	p.LoadingMessages = true
	p.ErrBanner = ""
	return p.gen
}

// ApplyMessages merges a message-list result with the same
// NotFound-is-empty policy as threads.
func (p *Panel) ApplyMessages(gen uint64, msgs []api.Message, err error) bool {
	if gen != p.gen {
		return false
	}
	p.LoadingMessages = false
	switch {
	case err == nil:
		p.entries = make([]Entry, 0, len(msgs))
		for _, m := range msgs {
			p.entries = append(p.entries, Entry{Message: m})
		}
	case api.IsNotFound(err):
		p.entries = nil
	default:
		p.ErrBanner = "could not load messages: " + err.Error()
	}
	return true
}

// AppendPending optimistically appends a locally constructed message
// and returns its temp id for later reconciliation. The caller clears
// the input and scrolls to the newest row before the network call
// resolves.
func (p *Panel) AppendPending(author api.User, body string) string {
	tempID := uuid.New().String()
	p.entries = append(p.entries, Entry{
		Message: api.Message{
			ThreadID: p.threadID(),
			UserID:   author.ID,
			Username: author.Name,
			Body:     body,
		},
		Pending: true,
		TempID:  tempID,
	})
	p.Sending = true
	p.ErrBanner = ""
	return tempID
}

// ConfirmPending reconciles a pending entry in place with the
// server-issued id. The list is not reloaded.
func (p *Panel) ConfirmPending(tempID string, serverID int) {
	p.Sending = false
	for i := range p.entries {
		if p.entries[i].TempID == tempID {
			p.entries[i].Message.ID = serverID
			p.entries[i].Pending = false
			p.entries[i].TempID = ""
			return
		}
	}
}

// FailPending removes a pending entry and raises the banner.
func (p *Panel) FailPending(tempID string, err error) {
	p.Sending = false
	for i := range p.entries {
		if p.entries[i].TempID == tempID {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			break
		}
	}
	p.ErrBanner = "could not send message: " + err.Error()
}

// ThreadDeleted handles a successful delete: the list reloads, and if
// the deleted thread was open the panel falls back to the thread list.
// Returns the generation for the reload fetch.
func (p *Panel) ThreadDeleted(threadID int) uint64 {
	if p.selected != nil && p.selected.ID == threadID {
		p.BackToThreads()
	}
	return p.beginThreadsLoad()
}

// DeleteFailed raises the banner after a failed thread delete.
func (p *Panel) DeleteFailed(err error) {
	p.ErrBanner = "could not delete thread: " + err.Error()
}

// DismissError clears the banner.
func (p *Panel) DismissError() {
	p.ErrBanner = ""
}

func (p *Panel) threadID() int {
	if p.selected == nil {
		return 0
	}
	return p.selected.ID
}

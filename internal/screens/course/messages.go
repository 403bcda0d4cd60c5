package course

import (
	"github.com/bytetechedu/bytetech/internal/api"
)

// contentLoadedMsg carries the course-content payload, fenced by the
// request generation.
type contentLoadedMsg struct {
	Gen  uint64
	Resp *api.CourseContentResponse
	Err  error
}

// previewLoadedMsg carries a text-file preview body, fenced by the
// preview generation.
type previewLoadedMsg struct {
	Gen  uint64
	Body string
	Err  error
}

// dwellElapsedMsg fires when a lesson's required viewing time has
// passed. Gen ties it to the timer that armed it; a stale generation
// means the lesson was deselected and the expiry is ignored.
type dwellElapsedMsg struct {
	Gen      uint64
	LessonID string
}

// markDoneMsg reports a mark/unmark progress call. Manual marks came
// from the user toggling a lesson; the rest came from the dwell timer,
// whose failures stay silent.
type markDoneMsg struct {
	LessonID string
	Unmark   bool
	Manual   bool
	Err      error
}

// buyDoneMsg reports a purchase initiation.
type buyDoneMsg struct {
	Result *api.PurchaseResult
	Err    error
}

// threadsLoadedMsg carries the forum thread list for the selected
// lesson, fenced by the panel generation.
type threadsLoadedMsg struct {
	Gen     uint64
	Threads []api.Thread
	Err     error
}

// messagesLoadedMsg carries one thread's messages, fenced by the panel
// generation.
type messagesLoadedMsg struct {
	Gen      uint64
	Messages []api.Message
	Err      error
}

// threadCreatedMsg reports a create-thread call.
type threadCreatedMsg struct {
	Err error
}

// messageSentMsg reconciles an optimistic message with the server id.
type messageSentMsg struct {
	TempID   string
	ServerID int
	Err      error
}

// threadDeletedMsg reports a delete-thread call.
type threadDeletedMsg struct {
	ThreadID int
	Err      error
}

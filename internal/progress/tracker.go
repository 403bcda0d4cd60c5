package progress

import (
	"time"

	"github.com/bytetechedu/bytetech/internal/api"
)

// Tracker owns the viewer's local completion state: the set of lessons
// auto-completed this session and a mutable copy of the server's
// progress summary. It also issues dwell-timer generations; a timer
// expiry is honored only if its generation is still current, which is
// how deselecting a lesson cancels its pending timer.
type Tracker struct {
	summary   api.ProgressSummary
	completed map[string]bool
	gen       uint64
}

// NewTracker seeds local progress from the server summary. A zero
// total is kept as zero; the percentage is re-derived rather than
// trusted.
func NewTracker(summary api.ProgressSummary) *Tracker {
	t := &Tracker{
		summary:   summary,
		completed: make(map[string]bool),
	}
	t.summary.ProgressPercentage = percentage(t.summary.CompletedLessons, t.summary.TotalLessons)
	return t
}

// Summary returns the current local progress summary.
func (t *Tracker) Summary() api.ProgressSummary {
	return t.summary
}

// Completed reports whether a lesson counts as completed, combining
// the server flag with local auto-completions.
func (t *Tracker) Completed(lessonID string, serverFlag bool) bool {
	return serverFlag || t.completed[lessonID]
}

// Arm opens a new dwell-timer generation for the given lesson,
// invalidating any previously armed timer. ok is false when no timer
// should run: the lesson is already completed or the required dwell is
// zero.
func (t *Tracker) Arm(lessonID string, serverFlag bool, dwell time.Duration) (gen uint64, ok bool) {
	t.gen++
	if t.Completed(lessonID, serverFlag) || dwell <= 0 {
		return t.gen, false
	}
	return t.gen, true
}

// Disarm invalidates any pending dwell timer without arming a new one.
func (t *Tracker) Disarm() {
	t.gen++
}

// Live reports whether a timer generation is still the current one.
// A stale generation means the lesson was deselected before the dwell
// elapsed and must not be marked complete.
func (t *Tracker) Live(gen uint64) bool {
	return gen == t.gen
}

// Complete records a successful mark-progress call. The increment is
// applied at most once per lesson, never past the lesson total.
func (t *Tracker) Complete(lessonID string) {
	if t.completed[lessonID] {
		return
	}
	t.completed[lessonID] = true

	if t.summary.CompletedLessons < t.summary.TotalLessons {
		t.summary.CompletedLessons++
	}
	t.summary.ProgressPercentage = percentage(t.summary.CompletedLessons, t.summary.TotalLessons)
}

// Uncomplete records a successful unmark-progress call. The caller
// only invokes it for a lesson that currently counts as completed.
func (t *Tracker) Uncomplete(lessonID string) {
	delete(t.completed, lessonID)
	if t.summary.CompletedLessons > 0 {
		t.summary.CompletedLessons--
	}
	t.summary.ProgressPercentage = percentage(t.summary.CompletedLessons, t.summary.TotalLessons)
}

func percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(completed) / float64(total)
}

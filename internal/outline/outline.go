// Package outline models the section/lesson tree of a course as the
// viewer consumes it.
package outline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bytetechedu/bytetech/internal/api"
)

// Kind is the declared lesson content kind, used for iconography only.
type Kind string

const (
	KindVideo Kind = "video"
	KindText  Kind = "text"
)

// Lesson is a single content unit.
type Lesson struct {
	ID        string
	Title     string
	Kind      Kind
	Duration  string
	FileID    string
	MIMEType  string
	Completed bool
	Locked    bool

	// DwellSpec is the raw minutes.seconds encoding of the required
	// viewing time, as received from the server. progress.ParseDwell
	// interprets it.
	DwellSpec string
}

// Section is an ordered grouping of lessons.
type Section struct {
	ID      int
	Title   string
	Lessons []Lesson
}

// Outline is the ordered section tree of one course.
type Outline struct {
	CourseID   int
	CourseName string
	Sections   []Section
}

// KindForMIME derives the lesson kind from its stored MIME type: any
// video/* prefix is video, everything else (including no file) is text.
func KindForMIME(mime string) Kind {
	if strings.HasPrefix(mime, "video/") {
		return KindVideo
	}
	return KindText
}

// Hydrate converts the wire course-content payload into an Outline.
// The server stores sections in a mapping keyed by opaque strings;
// display order is the numeric parse of the key, with non-numeric keys
// sorted after numeric ones, lexicographically.
func Hydrate(content *api.CourseContent) Outline {
	keys := make([]string, 0, len(content.Content))
	for k := range content.Content {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	out := Outline{
		CourseID:   content.ID,
		CourseName: content.Name,
		Sections:   make([]Section, 0, len(keys)),
	}
	for _, k := range keys {
		ws := content.Content[k]
		sec := Section{
			ID:      ws.ID,
			Title:   ws.Title,
			Lessons: make([]Lesson, 0, len(ws.Lessons)),
		}
		for _, wl := range ws.Lessons {
			sec.Lessons = append(sec.Lessons, Lesson{
				ID:        wl.ID.String(),
				Title:     wl.Title,
				Kind:      KindForMIME(wl.MIMEType),
				Duration:  wl.Duration,
				FileID:    wl.FileID,
				MIMEType:  wl.MIMEType,
				Completed: wl.Completed,
				Locked:    wl.Locked,
				DwellSpec: wl.TimeValidator.String(),
			})
		}
		out.Sections = append(out.Sections, sec)
	}
	return out
}

// Selectable reports whether a lesson may be opened. The lock flag is
// declared by the server but not enforced anywhere in the client; this
// predicate is the single place that policy lives, applied to both
// auto-selection and manual selection.
func Selectable(Lesson) bool {
	return true
}

// FirstSelectable returns the initial lesson to auto-select: the first
// selectable lesson in section order. ok is false for an empty outline.
func FirstSelectable(o Outline) (Lesson, bool) {
	for _, sec := range o.Sections {
		for _, l := range sec.Lessons {
			if Selectable(l) {
				return l, true
			}
		}
	}
	return Lesson{}, false
}

// TotalLessons counts every lesson in the outline.
func (o Outline) TotalLessons() int {
	n := 0
	for _, sec := range o.Sections {
		n += len(sec.Lessons)
	}
	return n
}

// CompletedLessons counts lessons the server already flagged complete.
func (o Outline) CompletedLessons() int {
	n := 0
	for _, sec := range o.Sections {
		for _, l := range sec.Lessons {
			if l.Completed {
				n++
			}
		}
	}
	return n
}

package editor

import "github.com/bytetechedu/bytetech/internal/api"

// coursesLoadedMsg carries the sensei's course list, gen-fenced.
type coursesLoadedMsg struct {
	Gen     uint64
	Courses []api.Course
	Err     error
}

// structureLoadedMsg carries one course's section tree, gen-fenced.
type structureLoadedMsg struct {
	Gen  uint64
	Resp *api.CourseContentResponse
	Err  error
}

// courseSavedMsg reports a create or metadata-edit call. CourseID is
// the new id on create, the edited id otherwise.
type courseSavedMsg struct {
	CourseID int
	Created  bool
	Err      error
}

// courseDeletedMsg reports a course delete.
type courseDeletedMsg struct {
	CourseID int
	Err      error
}

// sectionChangedMsg reports a section add or delete; either way the
// structure reloads.
type sectionChangedMsg struct {
	Err error
}

// lessonChangedMsg reports a lesson add or delete; either way the
// structure reloads.
type lessonChangedMsg struct {
	Err error
}

// giveDoneMsg reports a give-course call.
type giveDoneMsg struct {
	Email string
	Err   error
}

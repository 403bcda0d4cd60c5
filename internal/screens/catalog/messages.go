package catalog

import "github.com/bytetechedu/bytetech/internal/api"

// coursesLoadedMsg carries a course-list result together with the
// request generation it was issued under.
type coursesLoadedMsg struct {
	Gen     uint64
	Courses []api.Course
	Err     error
}

package api

import "encoding/json"

// User is the authenticated account as the backend reports it.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsSensei bool   `json:"is_sensei"`
	IsVerify bool   `json:"is_verify"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Course is a catalog entry.
type Course struct {
	ID          int     `json:"id"`
	SenseiID    int     `json:"sensei_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Hours       float64 `json:"hours"`
	MiniatureID string  `json:"miniature_id"`
	SenseiName  string  `json:"sensei_name"`
}

type coursesResponse struct {
	Courses []Course `json:"mtd_courses"`
}

// WireLesson is a lesson as it appears in the course-content payload.
//
// TimeValidator is kept as a json.Number: the backend encodes the
// required dwell time as minutes.seconds, and decoding to float64
// would collapse "2.30" (2m30s) into 2.3 (2m3s).
type WireLesson struct {
	ID            json.Number `json:"id"`
	SectionID     int         `json:"section_id"`
	Title         string      `json:"title"`
	Duration      string      `json:"duration"`
	FileID        string      `json:"file_id"`
	MIMEType      string      `json:"mime_type"`
	TimeValidator json.Number `json:"time_validator"`
	Completed     bool        `json:"is_completed"`
	Locked        bool        `json:"locked"`
}

// WireSection is a section object inside the content mapping.
type WireSection struct {
	ID      int          `json:"id"`
	Title   string       `json:"title"`
	Lessons []WireLesson `json:"lessons"`
}

// ProgressSummary is the server-computed course progress.
type ProgressSummary struct {
	TotalLessons       int     `json:"total_lessons"`
	CompletedLessons   int     `json:"completed_lessons"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// CourseContent is the full payload for a purchased course. Content is
// a mapping keyed by an opaque string; display order is the numeric
// parse of the key (see outline.Hydrate).
type CourseContent struct {
	ID          int                    `json:"id"`
	SenseiID    int                    `json:"sensei_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Hours       float64                `json:"hours"`
	MiniatureID string                 `json:"miniature_id"`
	VideoID     string                 `json:"video_id"`
	Price       float64                `json:"price"`
	SenseiName  string                 `json:"sensei_name"`
	Progress    ProgressSummary        `json:"progress"`
	Content     map[string]WireSection `json:"content"`
}

// CourseContentResponse wraps the content payload with the caller's
// purchase state.
type CourseContentResponse struct {
	IsPaid  *bool         `json:"is_paid"`
	Content CourseContent `json:"course_content"`
}

// Thread is a discussion topic scoped to a lesson.
type Thread struct {
	ID       int    `json:"id"`
	LessonID int    `json:"lesson_id"`
	Username string `json:"username"`
	Topic    string `json:"topic"`
}

type threadsResponse struct {
	Threads []Thread `json:"threads"`
}

// Message is a single post within a thread.
type Message struct {
	ID       int    `json:"id"`
	ThreadID int    `json:"thread_id"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Body     string `json:"message"`
}

type messagesResponse struct {
	Messages []Message `json:"messages"`
}

type sendMessageResponse struct {
	Message   string `json:"message"`
	MessageID int    `json:"message_id"`
}

// UserStats is the account-wide learning summary.
type UserStats struct {
	TotalCourses     int      `json:"total_courses"`
	CompletedCourses int      `json:"completed_courses"`
	TotalLessons     int      `json:"total_lessons"`
	CompletedLessons int      `json:"completed_lessons"`
	TotalHours       float64  `json:"total_hours"`
	Achievements     []string `json:"achievements"`
	Rank             string   `json:"rank"`
}

// PurchaseResult is returned by buy_course. CheckoutURL points at the
// externally hosted payment page.
type PurchaseResult struct {
	Message     string `json:"message"`
	CheckoutURL string `json:"checkout_url"`
	PurchaseID  int    `json:"purchase_id"`
}

// RegisterRequest is validated client-side before the network call.
type RegisterRequest struct {
	Name     string `validate:"required,min=2,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	IsSensei bool
}

// LoginRequest is validated client-side before the network call.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SupportRequest is a support-form submission.
type SupportRequest struct {
	Name    string `validate:"required"`
	Mail    string `validate:"required,email"`
	Issue   string `validate:"required"`
	Message string `validate:"required,min=10"`
}

// CreateLessonResult is returned by the workbench add_lesson call.
type CreateLessonResult struct {
	LessonID json.Number `json:"lesson_id"`
	FileID   string      `json:"file_id"`
}

// CreateSectionResult is returned by the workbench new_section call.
type CreateSectionResult struct {
	CourseID  int `json:"course_id"`
	SectionID int `json:"section_id"`
}

// CourseMetadata is the editable subset of a course's fields.
type CourseMetadata struct {
	Name        string
	Description string
	Price       string
	Hours       string
}

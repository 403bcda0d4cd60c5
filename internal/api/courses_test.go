package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const courseContentFixture = `{
  "is_paid": true,
  "course_content": {
    "id": 7,
    "sensei_id": 2,
    "name": "Go from zero",
    "description": "d",
    "hours": 10.5,
    "price": 49.99,
    "sensei_name": "Ada",
    "progress": {"total_lessons": 2, "completed_lessons": 1, "progress_percentage": 50},
    "content": {
      "1": {
        "id": 11,
        "title": "Basics",
        "lessons": [
          {"id": 100, "section_id": 11, "title": "Intro", "file_id": "f1",
           "mime_type": "video/mp4", "time_validator": 2.30, "is_completed": true},
          {"id": 101, "section_id": 11, "title": "Notes", "file_id": "f2",
           "mime_type": "text/plain", "time_validator": 0.45}
        ]
      }
    }
  }
}`

func TestCourseContentDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("course_id"); got != "7" {
			t.Errorf("course_id = %q", got)
		}
		w.Write([]byte(courseContentFixture))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.CourseContent(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}

	if resp.IsPaid == nil || !*resp.IsPaid {
		t.Fatal("is_paid should decode true")
	}
	sec, ok := resp.Content.Content["1"]
	if !ok || len(sec.Lessons) != 2 {
		t.Fatalf("content = %+v", resp.Content.Content)
	}

	// the dwell encoding must survive as raw wire text
	if got := sec.Lessons[0].TimeValidator.String(); got != "2.30" {
		t.Fatalf("time_validator = %q, want the undamaged 2.30", got)
	}
	if got := sec.Lessons[0].ID.String(); got != "100" {
		t.Fatalf("lesson id = %q", got)
	}
}

func TestCourseContentRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// course_content missing its required fields
		w.Write([]byte(`{"course_content": {"id": "not-an-int"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CourseContent(context.Background(), 7)

	var invalid *ErrInvalidPayload
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *ErrInvalidPayload", err)
	}
}

func TestCourseContentRejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CourseContent(context.Background(), 7)

	var invalid *ErrInvalidPayload
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *ErrInvalidPayload", err)
	}
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Catalog returns the public course catalog.
func (c *Client) Catalog(ctx context.Context) ([]Course, error) {
	var resp coursesResponse
	if err := c.getJSON(ctx, "/courses/mtd_courses", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// MyCourses returns the caller's purchased courses.
func (c *Client) MyCourses(ctx context.Context) ([]Course, error) {
	var resp coursesResponse
	if err := c.getJSON(ctx, "/courses/my_courses", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// CourseContent fetches the outline, files, and progress summary for a
// course. The payload is schema-checked before it reaches the caller.
func (c *Client) CourseContent(ctx context.Context, courseID int) (*CourseContentResponse, error) {
	query := url.Values{}
	query.Set("course_id", strconv.Itoa(courseID))

	body, _, err := c.getRaw(ctx, "/courses/course_content", query)
	if err != nil {
		return nil, err
	}
	if err := validateCourseContent(body); err != nil {
		return nil, err
	}

	var resp CourseContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ErrInvalidPayload{Err: fmt.Errorf("decode course_content: %w", err)}
	}
	return &resp, nil
}

// BuyCourse starts the checkout flow and returns the payment URL.
func (c *Client) BuyCourse(ctx context.Context, courseID int, userEmail string) (*PurchaseResult, error) {
	form := url.Values{}
	form.Set("course_id", strconv.Itoa(courseID))
	form.Set("user_email", userEmail)

	var resp PurchaseResult
	if err := c.postForm(ctx, "/courses/buy_course", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkProgress records a lesson as completed. The viewer calls this
// fire-and-forget when the dwell timer elapses; the backend treats it
// as idempotent.
func (c *Client) MarkProgress(ctx context.Context, lessonID string) error {
	form := url.Values{}
	form.Set("lesson_id", lessonID)
	return c.postForm(ctx, "/courses/mark_progress", form, nil)
}

// UnmarkProgress clears a lesson's completed flag.
func (c *Client) UnmarkProgress(ctx context.Context, lessonID string) error {
	form := url.Values{}
	form.Set("lesson_id", lessonID)
	return c.postForm(ctx, "/courses/unmark_progress", form, nil)
}

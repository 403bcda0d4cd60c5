package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Workbench calls back the sensei course editor endpoints. The backend
// rejects them for non-sensei accounts.

// NewCourse creates a course shell with metadata only; sections and
// lessons are added afterwards.
func (c *Client) NewCourse(ctx context.Context, meta CourseMetadata) (int, error) {
	form := url.Values{}
	form.Set("name", meta.Name)
	form.Set("description", meta.Description)
	form.Set("price", meta.Price)
	form.Set("hours", meta.Hours)

	var resp struct {
		Course struct {
			CourseID int `json:"course_id"`
		} `json:"mtd_course"`
	}
	if err := c.postForm(ctx, "/workbrench/new_course", form, &resp); err != nil {
		return 0, err
	}
	return resp.Course.CourseID, nil
}

// DeleteCourse removes a course and all of its content.
func (c *Client) DeleteCourse(ctx context.Context, courseID int) error {
	return c.deleteForm(ctx, fmt.Sprintf("/workbrench/delete_course/%d", courseID), nil, nil)
}

// NewSection appends an empty section to a course.
func (c *Client) NewSection(ctx context.Context, courseID int) (*CreateSectionResult, error) {
	var resp CreateSectionResult
	path := fmt.Sprintf("/workbrench/new_section/%d", courseID)
	if err := c.postForm(ctx, path, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSection removes a section and its lessons.
func (c *Client) DeleteSection(ctx context.Context, sectionID int) error {
	return c.deleteForm(ctx, fmt.Sprintf("/workbrench/delete_section/%d", sectionID), nil, nil)
}

// AddLessonInput describes a lesson to append to a section. FileID
// references an already-uploaded media file; TimeValidator uses the
// minutes.seconds wire encoding.
type AddLessonInput struct {
	SectionID     int
	Title         string
	FileID        string
	MIMEType      string
	TimeValidator string
}

// AddLesson appends a lesson to a section.
func (c *Client) AddLesson(ctx context.Context, in AddLessonInput) (*CreateLessonResult, error) {
	form := url.Values{}
	form.Set("section_id", strconv.Itoa(in.SectionID))
	form.Set("title", in.Title)
	form.Set("file_id", in.FileID)
	form.Set("mime_type", in.MIMEType)
	if in.TimeValidator != "" {
		form.Set("time_validator", in.TimeValidator)
	}

	var resp CreateLessonResult
	if err := c.postForm(ctx, "/workbrench/add_lesson", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteLesson removes a lesson and its stored file.
func (c *Client) DeleteLesson(ctx context.Context, fileID, lessonID string) error {
	path := fmt.Sprintf("/workbrench/delete_lesson/%s/%s", url.PathEscape(fileID), url.PathEscape(lessonID))
	return c.postForm(ctx, path, url.Values{}, nil)
}

// EditMetadata updates a course's name, description, price, or hours.
// Empty fields are left unchanged.
func (c *Client) EditMetadata(ctx context.Context, courseID int, meta CourseMetadata) error {
	form := url.Values{}
	form.Set("course_id", strconv.Itoa(courseID))
	if meta.Name != "" {
		form.Set("name", meta.Name)
	}
	if meta.Description != "" {
		form.Set("description", meta.Description)
	}
	if meta.Price != "" {
		form.Set("price", meta.Price)
	}
	if meta.Hours != "" {
		form.Set("hours", meta.Hours)
	}
	return c.postForm(ctx, "/workbrench/edit_metadata", form, nil)
}

// GiveCourse grants a course to another account by email.
func (c *Client) GiveCourse(ctx context.Context, courseID int, email string) error {
	form := url.Values{}
	form.Set("course_id", strconv.Itoa(courseID))
	form.Set("user_email_to_give", email)
	return c.postForm(ctx, "/workbrench/give_course", form, nil)
}

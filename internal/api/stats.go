package api

import "context"

// Stats returns the caller's account-wide learning summary.
func (c *Client) Stats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.getJSON(ctx, "/stats/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// LessonCount returns the lesson total for a course, used by the
// catalog detail view.
func (c *Client) LessonCount(ctx context.Context, courseID int) (int, error) {
	var resp struct {
		TotalLessons int `json:"total_lessons"`
	}
	if err := c.getJSON(ctx, "/stats/lessons_course", queryInt("course_id", courseID), &resp); err != nil {
		return 0, err
	}
	return resp.TotalLessons, nil
}

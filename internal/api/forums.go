package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ThreadsForLesson lists the discussion threads of a lesson. A 404 is
// reported as ErrNotFound; callers render it as an empty list.
func (c *Client) ThreadsForLesson(ctx context.Context, lessonID string) ([]Thread, error) {
	query := url.Values{}
	query.Set("lesson_id", lessonID)

	var resp threadsResponse
	if err := c.getJSON(ctx, "/forums/mtd_threads/", query, &resp); err != nil {
		return nil, err
	}
	return resp.Threads, nil
}

// MessagesForThread lists the messages of a thread, oldest first.
func (c *Client) MessagesForThread(ctx context.Context, threadID int) ([]Message, error) {
	query := url.Values{}
	query.Set("thread_id", strconv.Itoa(threadID))

	var resp messagesResponse
	if err := c.getJSON(ctx, "/forums/messages_thread/", query, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// CreateThread opens a new thread under a lesson. Topic is the
// combined "title: body" string composed by the forum panel.
func (c *Client) CreateThread(ctx context.Context, lessonID, topic string) error {
	if topic == "" {
		return errors.New("create thread: empty topic")
	}
	form := url.Values{}
	form.Set("lesson_id", lessonID)
	form.Set("topic", topic)
	return c.postForm(ctx, "/forums/create_thread/", form, nil)
}

// SendMessage posts a message to a thread and returns the server-
// assigned message id.
func (c *Client) SendMessage(ctx context.Context, threadID int, body string) (int, error) {
	if body == "" {
		return 0, errors.New("send message: empty body")
	}
	form := url.Values{}
	form.Set("thread_id", strconv.Itoa(threadID))
	form.Set("message", body)

	var resp sendMessageResponse
	if err := c.postForm(ctx, "/forums/send_message/", form, &resp); err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

// DeleteThread removes a thread. Sensei only; the backend enforces the
// role.
func (c *Client) DeleteThread(ctx context.Context, threadID int) error {
	query := url.Values{}
	query.Set("thread_id", strconv.Itoa(threadID))
	return c.deleteForm(ctx, "/forums/delete_thread/", query, nil)
}

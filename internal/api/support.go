package api

import (
	"context"
	"fmt"
	"net/url"
)

// SendSupport submits a support-form request.
func (c *Client) SendSupport(ctx context.Context, req SupportRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("support request: %w", err)
	}

	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("mail", req.Mail)
	form.Set("issue", req.Issue)
	form.Set("message", req.Message)
	return c.postForm(ctx, "/support/send_email", form, nil)
}

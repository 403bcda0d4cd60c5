package api

import (
	"context"
	"net/url"
)

// FetchFile downloads a stored file and returns its bytes with the
// server's Content-Type. Text previews use this; other media kinds are
// referenced by FileURL instead.
func (c *Client) FetchFile(ctx context.Context, fileID string) ([]byte, string, error) {
	query := url.Values{}
	query.Set("file_id", fileID)
	return c.getRaw(ctx, "/media/get_file", query)
}

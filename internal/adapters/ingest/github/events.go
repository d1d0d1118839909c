package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	perr "gitpulse/internal/platform/errors"
)

// maxPerPage is the GitHub cap on the events endpoint page size
const maxPerPage = 100

// Events fetches one page of the public event firehose as raw JSON objects.
// page is 1-based, perPage is clamped to the API maximum
func (c *Client) Events(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	path := fmt.Sprintf("/events?per_page=%d&page=%d", perPage, page)
	resp, err := c.Do(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github events read failed")
	}

	var events []json.RawMessage
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "github events decode failed")
	}
	return events, nil
}

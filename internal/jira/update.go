package jira

import (
	"context"
	"fmt"
	"net/url"
)

// UpdateResult carries the real outcome of a description write-back.
type UpdateResult struct {
	// Key is the issue the update was sent for.
	Key string

	// StatusCode is the HTTP status returned by the server, 0 when the
	// request never completed.
	StatusCode int

	// Err is the transport or API error, nil on success.
	Err error
}

// OK reports whether the remote write succeeded.
func (r UpdateResult) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Updater writes modified descriptions back to Jira.
type Updater struct {
	client *Client
}

// NewUpdater creates an Updater on the given client.
func NewUpdater(client *Client) *Updater {
	return &Updater{client: client}
}

// Apply sends a partial update replacing the description of the issue
// identified by key. The result reflects the actual server response;
// callers decide how to treat failures.
func (u *Updater) Apply(
	ctx context.Context,
	key string,
	description string,
) UpdateResult {
	path := "/rest/api/2/issue/" + url.PathEscape(key)
	payload := map[string]interface{}{
		"fields": map[string]string{"description": description},
	}

	status, err := u.client.Put(ctx, path, payload)
	if err != nil {
		err = fmt.Errorf("updating issue %s: %w", key, err)
	}

	return UpdateResult{Key: key, StatusCode: status, Err: err}
}

package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthScheme selects how the API token is presented in the
// Authorization header.
type AuthScheme string

const (
	// AuthBearer sends the token as a Personal Access Token.
	AuthBearer AuthScheme = "bearer"
	// AuthBasic sends the token as a pre-encoded basic credential.
	AuthBasic AuthScheme = "basic"
)

// Client is a thin HTTP client for the Jira Server/DC REST API v2.
// It handles authentication, JSON marshaling, and typed decoding of
// Jira error responses. Transport failures are returned as-is; there
// is no retry.
type Client struct {
	baseURL    string
	scheme     AuthScheme
	token      string
	httpClient *http.Client
}

// NewClient creates a new Jira HTTP client. The baseURL should be the
// root URL of the Jira instance (e.g., https://jira.corp.example.com).
func NewClient(baseURL string, scheme AuthScheme, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		scheme:  scheme,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get performs an HTTP GET request with the given query parameters and
// unmarshals the JSON response into result.
func (c *Client) Get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	_, err := c.do(ctx, http.MethodGet, path, nil, result)
	return err
}

// Put performs an HTTP PUT request with a JSON body and returns the
// response status code. Jira's issue update endpoint answers
// 204 No Content on success.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
) (int, error) {
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// do builds the request, attaches auth, and handles JSON
// (de)serialization. It returns the HTTP status code alongside any
// error so callers can report the real outcome of a write.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) (int, error) {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	switch c.scheme {
	case AuthBasic:
		req.Header.Set("Authorization", "Basic "+c.token)
	default:
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return resp.StatusCode, fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, fmt.Errorf(
			"authentication failed (401): check your API token for %s",
			c.baseURL,
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var jiraErr ErrorResponse
		if json.Unmarshal(respBody, &jiraErr) == nil &&
			(len(jiraErr.ErrorMessages) > 0 || len(jiraErr.Errors) > 0) {
			return resp.StatusCode, fmt.Errorf(
				"jira API error (%d) on %s %s: %s %v",
				resp.StatusCode, method, path,
				strings.Join(jiraErr.ErrorMessages, "; "),
				jiraErr.Errors,
			)
		}
		return resp.StatusCode, fmt.Errorf(
			"unexpected status %d on %s %s: %s",
			resp.StatusCode, method, path, string(respBody),
		)
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return resp.StatusCode, fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		)
	}

	return resp.StatusCode, nil
}

// Myself verifies the configured credentials by calling
// GET /rest/api/2/myself. Returns the user's display name on success.
func (c *Client) Myself(ctx context.Context) (string, error) {
	var me Myself
	if err := c.Get(ctx, "/rest/api/2/myself", nil, &me); err != nil {
		return "", fmt.Errorf("validating Jira connection: %w", err)
	}
	return me.DisplayName, nil
}

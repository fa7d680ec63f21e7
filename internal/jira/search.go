package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhle/jira-cleanup/internal/model"
)

// searchFields are the issue fields requested during search queries.
const searchFields = "id,key,summary,description"

// Searcher pages through the Jira search endpoint for issues whose
// description contains the attribution marker.
type Searcher struct {
	client   *Client
	jql      string
	pageSize int
}

// NewSearcher creates a Searcher for the given project and marker. A
// non-empty jql overrides the generated query entirely.
func NewSearcher(client *Client, project, marker, jql string, pageSize int) *Searcher {
	if jql == "" {
		jql = fmt.Sprintf(
			`project = %s AND description ~ "%s"`,
			project, escapeJQL(marker),
		)
	}
	if pageSize < 1 || pageSize > model.DefaultPageSize {
		pageSize = model.DefaultPageSize
	}
	return &Searcher{
		client:   client,
		jql:      jql,
		pageSize: pageSize,
	}
}

// SearchAll fetches every matching issue, page by page, and returns
// them in fetch order. Offsets advance by the page size; the scan ends
// when a page comes back short or the reported total is behind the
// next offset. Any transport or decode failure aborts the scan.
func (s *Searcher) SearchAll(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket

	for offset := 0; ; offset += s.pageSize {
		page, err := s.searchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		for _, issue := range page.Issues {
			tickets = append(tickets, issueToTicket(issue))
		}

		// A short page is authoritative even when the server reports
		// a larger total.
		if len(page.Issues) < s.pageSize {
			break
		}
		if page.Total < offset+s.pageSize {
			break
		}
	}

	return tickets, nil
}

// searchPage issues one search request at the given offset.
func (s *Searcher) searchPage(
	ctx context.Context,
	offset int,
) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("jql", s.jql)
	query.Set("fields", searchFields)
	query.Set("maxResults", strconv.Itoa(s.pageSize))
	query.Set("startAt", strconv.Itoa(offset))

	var resp SearchResponse
	err := s.client.Get(ctx, "/rest/api/2/search", query, &resp)
	if err != nil {
		return nil, fmt.Errorf("searching issues at offset %d: %w", offset, err)
	}

	return &resp, nil
}

// issueToTicket converts a Jira issue to a model.Ticket snapshot.
func issueToTicket(issue Issue) model.Ticket {
	return model.Ticket{
		ID:          issue.ID,
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Description: issue.Fields.Description,
	}
}

// escapeJQL escapes special characters in a JQL text search value.
func escapeJQL(s string) string {
	// Escape backslashes first, then double-quotes.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

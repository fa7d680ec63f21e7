// Package cleanup removes attribution lines from issue descriptions
// and drives the report-then-update pipeline.
package cleanup

import (
	"regexp"

	"github.com/nhle/jira-cleanup/internal/model"
)

// Scrubber removes attribution lines of the form
// "<marker> <text>\n" from descriptions.
type Scrubber struct {
	pattern *regexp.Regexp
}

// NewScrubber builds a Scrubber for the given marker. An empty marker
// falls back to the default attribution marker.
func NewScrubber(marker string) *Scrubber {
	if marker == "" {
		marker = model.DefaultMarker
	}
	return &Scrubber{
		pattern: regexp.MustCompile(
			`(?m)^` + regexp.QuoteMeta(marker) + ` .*\n`,
		),
	}
}

// Scrub returns the description with the first attribution line
// removed, trailing newline included. Descriptions without the marker
// come back unchanged. Only the first occurrence is removed; a marker
// line without a trailing newline (end of text) is left alone.
func (s *Scrubber) Scrub(description string) string {
	loc := s.pattern.FindStringIndex(description)
	if loc == nil {
		return description
	}
	return description[:loc[0]] + description[loc[1]:]
}

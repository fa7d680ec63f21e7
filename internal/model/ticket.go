package model

// Ticket is a read-only snapshot of a Jira issue taken during a run.
// The remote system owns the entity; nothing here is persisted beyond
// the report row derived from it.
type Ticket struct {
	// ID is the numeric issue identifier, kept as the string Jira sends.
	ID string

	// Key is the human-readable issue key (e.g. "LOL-123").
	Key string

	// Summary is the issue summary, empty when the field is absent.
	Summary string

	// Description is the issue description as fetched, possibly
	// containing an attribution line.
	Description string
}

// ReportRow is the positional column layout of one report record.
type ReportRow struct {
	Key     string
	ID      string
	Summary string
}

// Row returns the ticket's report columns in output order.
func (t Ticket) Row() ReportRow {
	return ReportRow{Key: t.Key, ID: t.ID, Summary: t.Summary}
}

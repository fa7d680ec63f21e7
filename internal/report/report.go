// Package report appends processed tickets to a local CSV file.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/nhle/jira-cleanup/internal/model"
)

// CSV writes one row per processed ticket to an append-only file with
// three positional columns: key, id, summary. No header is written and
// duplicate rows are not deduplicated; a rerun appends again.
type CSV struct {
	path string
}

// NewCSV creates a reporter appending to the file at path. The file is
// created on first write.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the report file location.
func (r *CSV) Path() string {
	return r.path
}

// Record appends one row for the ticket. Each call performs its own
// open/write/close cycle, which is safe for the tool's sequential
// single-writer use but not for concurrent runs.
func (r *CSV) Record(t model.Ticket) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening report %s: %w", r.path, err)
	}

	w := csv.NewWriter(f)
	row := t.Row()
	if err := w.Write([]string{row.Key, row.ID, row.Summary}); err != nil {
		f.Close()
		return fmt.Errorf("writing report row for %s: %w", row.Key, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing report row for %s: %w", row.Key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report %s: %w", r.path, err)
	}
	return nil
}

package cleanup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhle/jira-cleanup/internal/jira"
	"github.com/nhle/jira-cleanup/internal/model"
)

// Searcher fetches every issue matching the cleanup query.
type Searcher interface {
	SearchAll(ctx context.Context) ([]model.Ticket, error)
}

// Updater writes a cleaned description back to the remote issue.
type Updater interface {
	Apply(ctx context.Context, key, description string) jira.UpdateResult
}

// Reporter appends one record per processed ticket.
type Reporter interface {
	Record(t model.Ticket) error
}

// Summary is the outcome of one run.
type Summary struct {
	// Matched is the number of issues the search returned.
	Matched int

	// Reported is the number of rows appended to the report.
	Reported int

	// Updated is the number of descriptions successfully written back.
	Updated int

	// Failed is the number of write-backs the server rejected.
	Failed int
}

// Runner drives one cleanup pass: fetch all matching issues, then for
// each one append a report row, scrub the description, and send the
// update. Tickets are processed sequentially in fetch order.
type Runner struct {
	searcher Searcher
	updater  Updater
	reporter Reporter
	scrubber *Scrubber
	logger   *slog.Logger

	// DryRun skips the remote write-back while still reporting.
	DryRun bool
}

// NewRunner wires a Runner from its pipeline stages.
func NewRunner(
	searcher Searcher,
	updater Updater,
	reporter Reporter,
	scrubber *Scrubber,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		searcher: searcher,
		updater:  updater,
		reporter: reporter,
		scrubber: scrubber,
		logger:   logger,
	}
}

// Run executes one pass. Fetch and report errors abort the run; a
// rejected update is logged and counted, and the pass moves on to the
// next ticket. The summary reflects whatever completed before any
// aborting error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	tickets, err := r.searcher.SearchAll(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetching matching issues: %w", err)
	}
	sum.Matched = len(tickets)
	r.logger.Info("search complete", "matched", sum.Matched)

	for _, t := range tickets {
		if err := r.reporter.Record(t); err != nil {
			return sum, fmt.Errorf("recording issue %s: %w", t.Key, err)
		}
		sum.Reported++

		cleaned := r.scrubber.Scrub(t.Description)

		if r.DryRun {
			r.logger.Info("dry-run: skipping update", "key", t.Key)
			continue
		}

		res := r.updater.Apply(ctx, t.Key, cleaned)
		if !res.OK() {
			sum.Failed++
			r.logger.Error("update rejected",
				"key", t.Key,
				"status", res.StatusCode,
				"error", res.Err,
			)
			continue
		}
		sum.Updated++
		r.logger.Debug("updated issue", "key", t.Key, "status", res.StatusCode)
	}

	r.logger.Info("run complete",
		"matched", sum.Matched,
		"reported", sum.Reported,
		"updated", sum.Updated,
		"failed", sum.Failed,
	)
	return sum, nil
}

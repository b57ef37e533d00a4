package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Audit is the log to read.
	Audit *audit.Log

	// Operation keeps only entries for this operation. Empty keeps all.
	Operation string

	// Limit keeps only the most recent entries. 0 means no limit.
	Limit int
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered entries, oldest first.
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// Log reads and filters the audit log. A missing log yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := opts.Audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	return &LogResult{
		Entries: audit.Filter(entries, opts.Operation, opts.Limit),
		Total:   len(entries),
	}, nil
}

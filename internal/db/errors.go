package db

import (
	"fmt"

	"launchdash/internal/dataset"
)

// Domain-level database error sentinels.
var (
	// ErrRecordsNotFound means the launch_records table is empty. It matches
	// dataset.ErrEmptyDataset so callers treat both sources alike.
	ErrRecordsNotFound = fmt.Errorf("no launch records in database: %w", dataset.ErrEmptyDataset)
)

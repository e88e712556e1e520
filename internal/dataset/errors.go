package dataset

import "errors"

var (
	// ErrEmptyDataset means the store was built from zero rows.
	ErrEmptyDataset = errors.New("dataset contains no launch records")

	// ErrMalformedRow means the loader rejected an input row.
	ErrMalformedRow = errors.New("malformed launch record")

	// ErrMissingColumn means a required CSV column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
)

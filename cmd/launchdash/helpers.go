package main

import (
	"fmt"

	"launchdash/internal/dataset"
	"launchdash/internal/format"
)

func loadStore(path string) (*dataset.Store, error) {
	records, err := dataset.LoadCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	store, err := dataset.New(records)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return store, nil
}

func tableMode(markdown bool) format.Mode {
	if markdown {
		return format.Markdown
	}
	return format.ASCII
}

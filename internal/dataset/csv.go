package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"launchdash/internal/models"
)

// CSV column headers for the launch table.
const (
	ColumnSite     = "Launch Site"
	ColumnPayload  = "Payload Mass (kg)"
	ColumnClass    = "class"
	ColumnCategory = "Booster Version Category"
)

var requiredColumns = []string{ColumnSite, ColumnPayload, ColumnClass, ColumnCategory}

// LoadCSVFile opens path and parses it with ParseCSV.
func LoadCSVFile(path string) ([]models.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads launch records from CSV. Columns are located by header name,
// case-insensitively; extra columns are ignored. Any malformed row fails the load.
func ParseCSV(r io.Reader) ([]models.LaunchRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.LaunchRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports.
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		for _, col := range requiredColumns {
			if strings.EqualFold(h, col) {
				idx[col] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (models.LaunchRecord, error) {
	field := func(col string) string {
		return strings.TrimSpace(row[idx[col]])
	}

	site := field(ColumnSite)
	if site == "" {
		return models.LaunchRecord{}, fmt.Errorf("%w: empty launch site", ErrMalformedRow)
	}

	payload, err := strconv.ParseFloat(field(ColumnPayload), 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return models.LaunchRecord{}, fmt.Errorf("%w: invalid payload mass %q", ErrMalformedRow, field(ColumnPayload))
	}
	if payload < 0 {
		return models.LaunchRecord{}, fmt.Errorf("%w: negative payload mass %v", ErrMalformedRow, payload)
	}

	class, err := strconv.Atoi(field(ColumnClass))
	if err != nil || (class != models.ClassFailure && class != models.ClassSuccess) {
		return models.LaunchRecord{}, fmt.Errorf("%w: class must be 0 or 1, got %q", ErrMalformedRow, field(ColumnClass))
	}

	return models.LaunchRecord{
		Site:                   site,
		PayloadMassKg:          payload,
		Class:                  class,
		BoosterVersionCategory: field(ColumnCategory),
	}, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"launchdash/internal/models"
)

// launchRecordColumns is the standard column list for launch record queries.
var launchRecordColumns = []string{"launch_site", "payload_mass_kg", "class", "booster_version_category"}

// LoadLaunchRecords returns every launch record in insertion order.
func (d *DB) LoadLaunchRecords(ctx context.Context) ([]models.LaunchRecord, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT launch_site, payload_mass_kg, class, booster_version_category
		FROM launch_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query launch records: %w", err)
	}
	defer rows.Close()

	var records []models.LaunchRecord
	for rows.Next() {
		var r models.LaunchRecord
		if err := rows.Scan(&r.Site, &r.PayloadMassKg, &r.Class, &r.BoosterVersionCategory); err != nil {
			return nil, fmt.Errorf("failed to scan launch record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrRecordsNotFound
	}
	return records, nil
}

// ImportLaunchRecords replaces the table contents with records in a single
// transaction and returns the number of rows copied.
func (d *DB) ImportLaunchRecords(ctx context.Context, records []models.LaunchRecord) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE launch_records RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("failed to truncate launch records: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"launch_records"},
		launchRecordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Site, r.PayloadMassKg, int16(r.Class), r.BoosterVersionCategory}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy launch records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return n, nil
}

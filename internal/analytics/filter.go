// Package analytics turns a dashboard selection into chart-ready series.
package analytics

import (
	"fmt"

	"launchdash/internal/models"
)

// ValidateRange returns ErrInvalidRange if low exceeds high.
func ValidateRange(r models.PayloadRange) error {
	if !r.IsOrdered() {
		return fmt.Errorf("%w: low %v is greater than high %v", ErrInvalidRange, r.Low, r.High)
	}
	return nil
}

// FilterSite keeps the records launched from site. SiteAll returns the input
// unchanged; a site with no records yields an empty result.
func FilterSite(records []models.LaunchRecord, site string) []models.LaunchRecord {
	if site == models.SiteAll {
		return records
	}

	out := make([]models.LaunchRecord, 0)
	for _, r := range records {
		if r.Site == site {
			out = append(out, r)
		}
	}
	return out
}

// FilterPayloadRange keeps the records whose payload lies strictly between low and high.
func FilterPayloadRange(records []models.LaunchRecord, r models.PayloadRange) ([]models.LaunchRecord, error) {
	if err := ValidateRange(r); err != nil {
		return nil, err
	}

	out := make([]models.LaunchRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.PayloadMassKg) {
			out = append(out, rec)
		}
	}
	return out, nil
}

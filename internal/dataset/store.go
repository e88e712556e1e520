// Package dataset holds the in-memory launch record table.
package dataset

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"launchdash/internal/models"
)

var fingerprintSpace = uuid.MustParse("0b6f3c52-53d4-4f0e-9a0e-2f7d61c2a0f4")

// Store is an immutable table of launch records. It is safe for concurrent reads.
type Store struct {
	records    []models.LaunchRecord
	sites      []string
	siteCounts map[string]int
	successes  map[string]int
	minPayload float64
	maxPayload float64
	digest     uuid.UUID
}

// New builds a store from the given records. The slice is copied.
func New(records []models.LaunchRecord) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Store{
		records:    slices.Clone(records),
		siteCounts: make(map[string]int),
		successes:  make(map[string]int),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}

	var b strings.Builder
	for _, r := range s.records {
		b.WriteString(r.Site)
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(r.PayloadMassKg, 'g', -1, 64))
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(r.Class))
		b.WriteByte('|')
		b.WriteString(r.BoosterVersionCategory)
		b.WriteByte('\n')

		if _, ok := s.siteCounts[r.Site]; !ok {
			s.sites = append(s.sites, r.Site)
		}
		s.siteCounts[r.Site]++
		s.successes[r.Site] += r.Class
		s.minPayload = min(s.minPayload, r.PayloadMassKg)
		s.maxPayload = max(s.maxPayload, r.PayloadMassKg)
	}
	s.digest = uuid.NewSHA1(fingerprintSpace, []byte(b.String()))

	return s, nil
}

// AllRecords returns a copy of every record in load order.
func (s *Store) AllRecords() []models.LaunchRecord {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// KnownSites returns the distinct sites in first-seen order.
func (s *Store) KnownSites() []string {
	return slices.Clone(s.sites)
}

// HasSite reports whether any record was launched from site.
func (s *Store) HasSite(site string) bool {
	_, ok := s.siteCounts[site]
	return ok
}

// SiteCount returns the number of records for a site. Unknown sites count zero.
func (s *Store) SiteCount(site string) int {
	return s.siteCounts[site]
}

// SuccessCount returns the number of successful launches for a site.
func (s *Store) SuccessCount(site string) int {
	return s.successes[site]
}

// TotalSuccesses returns the number of successful launches across all sites.
func (s *Store) TotalSuccesses() int {
	total := 0
	for _, n := range s.successes {
		total += n
	}
	return total
}

// PayloadBounds returns the smallest and largest payload mass in the table.
func (s *Store) PayloadBounds() (float64, float64) {
	return s.minPayload, s.maxPayload
}

// FullRange returns the payload bounds as a range.
func (s *Store) FullRange() models.PayloadRange {
	return models.PayloadRange{Low: s.minPayload, High: s.maxPayload}
}

// DefaultSelection is every site over the full payload range.
func (s *Store) DefaultSelection() models.Selection {
	return models.Selection{Site: models.SiteAll, PayloadRange: s.FullRange()}
}

// Fingerprint identifies the table contents. Stores built from the same
// records in the same order share a fingerprint.
func (s *Store) Fingerprint() uuid.UUID {
	return s.digest
}

package models

import (
	"strconv"

	"github.com/google/uuid"
)

// SiteAll is the site selector sentinel meaning every launch site.
const SiteAll = "ALL"

// selectionNamespace scopes the deterministic selection keys.
var selectionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("launchdash/selection"))

// PayloadRange is a payload-mass window in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// IsOrdered returns true if Low does not exceed High.
func (r PayloadRange) IsOrdered() bool {
	return r.Low <= r.High
}

// Contains reports whether kg lies strictly inside the range.
func (r PayloadRange) Contains(kg float64) bool {
	return r.Low < kg && kg < r.High
}

// Clamp bounds both ends of the range to [lo, hi].
func (r PayloadRange) Clamp(lo, hi float64) PayloadRange {
	return PayloadRange{
		Low:  min(max(r.Low, lo), hi),
		High: min(max(r.High, lo), hi),
	}
}

// Selection is the dashboard input state: a site selector and a payload window.
type Selection struct {
	Site         string       `json:"site"`
	PayloadRange PayloadRange `json:"payload_range"`
}

// IsAllSites returns true if the selection covers every site.
func (s Selection) IsAllSites() bool {
	return s.Site == SiteAll
}

// Key returns a stable identifier for the selection. Equal selections share a key.
func (s Selection) Key() uuid.UUID {
	name := s.Site + "|" +
		strconv.FormatFloat(s.PayloadRange.Low, 'g', -1, 64) + "|" +
		strconv.FormatFloat(s.PayloadRange.High, 'g', -1, 64)
	return uuid.NewSHA1(selectionNamespace, []byte(name))
}

// SelectionUpdate is a partial selection change. Nil fields are left untouched.
type SelectionUpdate struct {
	Site         *string       `json:"site,omitempty"`
	PayloadRange *PayloadRange `json:"payload_range,omitempty"`
}

// Kind names the parts of the selection the update touches.
func (u SelectionUpdate) Kind() string {
	switch {
	case u.Site != nil && u.PayloadRange != nil:
		return "site_and_range"
	case u.Site != nil:
		return "site"
	case u.PayloadRange != nil:
		return "range"
	default:
		return "empty"
	}
}

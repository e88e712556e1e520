package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"launchdash/internal/models"
)

// Input validation errors.
var (
	ErrInvalidSite   = errors.New("invalid site selector")
	ErrInvalidNumber = errors.New("payload bound must be a finite number")
	ErrPartialRange  = errors.New("both low and high payload bounds are required")
)

// MaxSiteLength bounds the length of a site selector.
const MaxSiteLength = 100

// ValidateSite checks that a site selector is non-empty, short and printable.
// It does not check the site against the dataset; unknown sites are allowed.
func ValidateSite(site string) bool {
	if site == "" || len(site) > MaxSiteLength {
		return false
	}
	for _, r := range site {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// NormalizeSite trims whitespace and maps any casing of "all" to the sentinel.
func NormalizeSite(site string) string {
	site = strings.TrimSpace(site)
	if strings.EqualFold(site, models.SiteAll) {
		return models.SiteAll
	}
	return site
}

// ParsePayloadBound parses one end of a payload range.
func ParsePayloadBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseSelectionUpdate builds a partial update from raw form or query values.
// Empty inputs leave the matching part of the selection untouched. The range
// is not checked for ordering; that is the controller's job.
func ParseSelectionUpdate(site, low, high string) (models.SelectionUpdate, error) {
	var update models.SelectionUpdate

	if site = NormalizeSite(site); site != "" {
		if !ValidateSite(site) {
			return update, ErrInvalidSite
		}
		update.Site = &site
	}

	low, high = strings.TrimSpace(low), strings.TrimSpace(high)
	switch {
	case low == "" && high == "":
	case low == "" || high == "":
		return update, ErrPartialRange
	default:
		lo, err := ParsePayloadBound(low)
		if err != nil {
			return update, err
		}
		hi, err := ParsePayloadBound(high)
		if err != nil {
			return update, err
		}
		update.PayloadRange = &models.PayloadRange{Low: lo, High: hi}
	}

	return update, nil
}

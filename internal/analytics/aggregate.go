package analytics

import (
	"strconv"

	"launchdash/internal/models"
)

// SuccessesBySite sums the outcome class per site, one slice per distinct site
// in first-seen order. Sites without a success still get a zero slice.
func SuccessesBySite(records []models.LaunchRecord) models.PieSeries {
	return groupBy(records,
		func(r models.LaunchRecord) string { return r.Site },
		func(r models.LaunchRecord) int { return r.Class },
	)
}

// OutcomesForSite counts records per outcome class. Classes with no records are
// omitted, so the series has at most two slices labelled "0" and "1".
func OutcomesForSite(records []models.LaunchRecord) models.PieSeries {
	return groupBy(records,
		func(r models.LaunchRecord) string { return strconv.Itoa(r.Class) },
		func(models.LaunchRecord) int { return 1 },
	)
}

// Aggregate picks the aggregation mode for site: SuccessesBySite over all
// records for SiteAll, OutcomesForSite over the site's records otherwise.
func Aggregate(records []models.LaunchRecord, site string) models.PieSeries {
	if site == models.SiteAll {
		return SuccessesBySite(records)
	}
	return OutcomesForSite(FilterSite(records, site))
}

func groupBy(records []models.LaunchRecord, key func(models.LaunchRecord) string, value func(models.LaunchRecord) int) models.PieSeries {
	pos := make(map[string]int)
	series := make(models.PieSeries, 0)
	for _, r := range records {
		k := key(r)
		i, ok := pos[k]
		if !ok {
			i = len(series)
			pos[k] = i
			series = append(series, models.PieSlice{Label: k})
		}
		series[i].Value += value(r)
	}
	return series
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"launchdash/internal/dataset"
)

// Selection change outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Cache lookup results.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	datasetRecordsDesc = prometheus.NewDesc(
		"launchdash_dataset_records",
		"Number of launch records per site",
		[]string{"site"},
		nil,
	)
	datasetSuccessesDesc = prometheus.NewDesc(
		"launchdash_dataset_successes",
		"Number of successful launches per site",
		[]string{"site"},
		nil,
	)

	selectionChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "launchdash_selection_changes_total",
		Help: "Selection change events by kind and outcome",
	}, []string{"kind", "outcome"})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "launchdash_chart_cache_lookups_total",
		Help: "Chart cache lookups by chart kind and result",
	}, []string{"kind", "result"})

	pieSlices = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "launchdash_pie_slices",
		Help: "Number of slices in the current pie series",
	})
	scatterPoints = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "launchdash_scatter_points",
		Help: "Number of points in the current scatter series",
	})
)

// DatasetCollector is a custom Prometheus collector that reports per-site
// record and success counts from the store on each scrape.
type DatasetCollector struct {
	store *dataset.Store
}

// Describe sends the metric descriptors to the channel.
func (c *DatasetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- datasetRecordsDesc
	ch <- datasetSuccessesDesc
}

// Collect emits the per-site gauges.
func (c *DatasetCollector) Collect(ch chan<- prometheus.Metric) {
	for _, site := range c.store.KnownSites() {
		ch <- prometheus.MustNewConstMetric(datasetRecordsDesc, prometheus.GaugeValue, float64(c.store.SiteCount(site)), site)
		ch <- prometheus.MustNewConstMetric(datasetSuccessesDesc, prometheus.GaugeValue, float64(c.store.SuccessCount(site)), site)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(store *dataset.Store) {
	initOnce.Do(func() {
		Register(prometheus.DefaultRegisterer, store)
	})
}

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer, store *dataset.Store) {
	reg.MustRegister(
		&DatasetCollector{store: store},
		selectionChanges,
		cacheLookups,
		pieSlices,
		scatterPoints,
	)
}

// RecordSelectionChange counts a selection change event.
func RecordSelectionChange(kind, outcome string) {
	selectionChanges.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheLookup counts a chart cache lookup.
func RecordCacheLookup(kind, result string) {
	cacheLookups.WithLabelValues(kind, result).Inc()
}

// ObserveSeries records the size of the current chart series.
func ObserveSeries(pie, scatter int) {
	pieSlices.Set(float64(pie))
	scatterPoints.Set(float64(scatter))
}

// RecordSelectionResult counts a selection change as applied or rejected.
func RecordSelectionResult(kind string, err error) {
	outcome := OutcomeApplied
	if err != nil {
		outcome = OutcomeRejected
	}
	RecordSelectionChange(kind, outcome)
}

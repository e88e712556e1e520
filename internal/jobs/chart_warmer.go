package jobs

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"launchdash/internal/analytics"
	"launchdash/internal/cache"
	"launchdash/internal/controller"
	"launchdash/internal/models"
)

// ChartWarmer pre-renders the full-range charts for every site so the first
// visit to a site is served from the cache.
type ChartWarmer struct {
	producer *analytics.Producer
	charts   *cache.Charts
	interval time.Duration
	logger   *slog.Logger
}

// NewChartWarmer creates a new chart warmer.
func NewChartWarmer(producer *analytics.Producer, charts *cache.Charts, interval time.Duration, logger *slog.Logger) *ChartWarmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWarmer{
		producer: producer,
		charts:   charts,
		interval: interval,
		logger:   logger,
	}
}

// Start warms the cache immediately and then on every interval until ctx is
// done. A non-positive interval warms once and returns.
func (w *ChartWarmer) Start(ctx context.Context) {
	w.logger.Info("chart warmer started", "interval", w.interval)

	// Run immediately on start
	w.WarmAll(ctx)

	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("chart warmer stopped")
			return
		case <-ticker.C:
			w.WarmAll(ctx)
		}
	}
}

// Selections returns every selection the warmer renders: all sites plus each
// known site, over the full payload range.
func (w *ChartWarmer) Selections() []models.Selection {
	store := w.producer.Store()
	full := store.FullRange()

	sels := []models.Selection{{Site: models.SiteAll, PayloadRange: full}}
	for _, site := range store.KnownSites() {
		sels = append(sels, models.Selection{Site: site, PayloadRange: full})
	}
	return sels
}

// WarmAll renders every selection and returns the number warmed.
func (w *ChartWarmer) WarmAll(ctx context.Context) int {
	warmed := 0
	for _, sel := range w.Selections() {
		// Check context before each selection
		select {
		case <-ctx.Done():
			return warmed
		default:
		}

		if err := w.warm(ctx, sel); err != nil {
			w.logger.Warn("chart warm-up failed", "site", sel.Site, "error", err)
			continue
		}
		warmed++
	}

	w.logger.Debug("chart warm-up finished", "selections", warmed)
	return warmed
}

func (w *ChartWarmer) warm(ctx context.Context, sel models.Selection) error {
	snap, err := controller.Compute(w.producer, sel.Site, sel.PayloadRange)
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := w.charts.PiePNG(snap.Key, snap.Selection, snap.Pie)
		return err
	})
	g.Go(func() error {
		_, err := w.charts.ScatterPNG(snap.Key, snap.Selection, snap.Scatter)
		return err
	})
	return g.Wait()
}

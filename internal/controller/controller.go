// Package controller owns the dashboard selection and recomputes the chart
// series whenever it changes.
package controller

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"launchdash/internal/analytics"
	"launchdash/internal/models"
)

// Snapshot is one consistent set of outputs for a selection. Selection holds
// the range clamped to the dataset bounds for display; Window is the range
// the records were filtered with.
type Snapshot struct {
	Key       uuid.UUID
	Selection models.Selection
	Window    models.PayloadRange
	Pie       models.PieSeries
	Scatter   models.ScatterSeries
}

// Response returns the API view of the snapshot.
func (s Snapshot) Response() models.SnapshotResponse {
	return models.SnapshotResponse{
		Key:       s.Key,
		Selection: s.Selection,
		Window:    s.Window,
		Pie:       s.Pie,
		Scatter:   s.Scatter,
	}
}

// Compute builds the snapshot for site and window without touching any
// controller state. The window must be ordered. Records are filtered with
// the window as given, so a window wider than the data keeps the extreme
// records that clamping would put on the excluded boundary.
func Compute(producer *analytics.Producer, site string, window models.PayloadRange) (Snapshot, error) {
	if err := analytics.ValidateRange(window); err != nil {
		return Snapshot{}, err
	}

	filter := models.Selection{Site: site, PayloadRange: window}
	pie, scatter, err := producer.Produce(filter)
	if err != nil {
		return Snapshot{}, err
	}

	lo, hi := producer.Store().PayloadBounds()
	return Snapshot{
		Key:       filter.Key(),
		Selection: models.Selection{Site: site, PayloadRange: window.Clamp(lo, hi)},
		Window:    window,
		Pie:       pie,
		Scatter:   scatter,
	}, nil
}

// Sink receives every committed snapshot. Sinks run while the controller is
// locked and must not call back into it.
type Sink interface {
	Publish(Snapshot)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Snapshot)

// Publish calls f(s).
func (f SinkFunc) Publish(s Snapshot) {
	f(s)
}

// Controller serializes selection changes. Each change is merged, recomputed
// and published before the next one is accepted.
type Controller struct {
	mu       sync.Mutex
	producer *analytics.Producer
	current  Snapshot
	sinks    []Sink
	logger   *slog.Logger
}

// New creates a controller at the default selection (all sites, full payload
// range) and computes its initial snapshot.
func New(producer *analytics.Producer, logger *slog.Logger, sinks ...Sink) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		producer: producer,
		sinks:    sinks,
		logger:   logger,
	}

	initial := producer.Store().DefaultSelection()
	snap, err := Compute(producer, initial.Site, initial.PayloadRange)
	if err != nil {
		return nil, err
	}
	c.commit(snap)

	return c, nil
}

// Current returns the latest committed snapshot.
func (c *Controller) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers a sink for future snapshots.
func (c *Controller) Subscribe(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// OnSelectionChanged merges update into the selection and recomputes both
// series. A nil field leaves that part of the selection as it was. If the
// range is invalid the selection and outputs are left unchanged and
// analytics.ErrInvalidRange is returned.
func (c *Controller) OnSelectionChanged(update models.SelectionUpdate) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	site, window := c.current.Selection.Site, c.current.Window
	if update.Site != nil {
		site = *update.Site
	}
	if update.PayloadRange != nil {
		window = *update.PayloadRange
	}

	snap, err := Compute(c.producer, site, window)
	if err != nil {
		c.logger.Warn("rejected selection update", "kind", update.Kind(), "error", err)
		return c.current, err
	}
	c.commit(snap)

	c.logger.Debug("selection changed",
		"site", site,
		"low", window.Low,
		"high", window.High,
		"pie_slices", len(snap.Pie),
		"scatter_points", len(snap.Scatter),
	)
	return snap, nil
}

func (c *Controller) commit(snap Snapshot) {
	c.current = snap
	for _, s := range c.sinks {
		s.Publish(snap)
	}
}

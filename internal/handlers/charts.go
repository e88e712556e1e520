package handlers

import (
	"github.com/gofiber/fiber/v3"

	"launchdash/internal/cache"
	"launchdash/internal/controller"
	"launchdash/internal/middleware"
)

// ChartHandler serves the rendered chart images for the current selection.
type ChartHandler struct {
	ctrl   *controller.Controller
	charts *cache.Charts
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(ctrl *controller.Controller, charts *cache.Charts) *ChartHandler {
	return &ChartHandler{ctrl: ctrl, charts: charts}
}

// Pie serves the success breakdown as a PNG.
func (h *ChartHandler) Pie(c fiber.Ctx) error {
	snap := h.snapshot(c)
	return h.sendPNG(c, cache.KindPie, snap, func() ([]byte, error) {
		return h.charts.PiePNG(snap.Key, snap.Selection, snap.Pie)
	})
}

// Scatter serves the payload-vs-outcome chart as a PNG.
func (h *ChartHandler) Scatter(c fiber.Ctx) error {
	snap := h.snapshot(c)
	return h.sendPNG(c, cache.KindScatter, snap, func() ([]byte, error) {
		return h.charts.ScatterPNG(snap.Key, snap.Selection, snap.Scatter)
	})
}

func (h *ChartHandler) snapshot(c fiber.Ctx) controller.Snapshot {
	if snap, ok := middleware.Snapshot(c); ok {
		return snap
	}
	return h.ctrl.Current()
}

// sendPNG writes the image with an ETag derived from the dataset namespace and
// the snapshot key so unchanged charts are answered with 304.
func (h *ChartHandler) sendPNG(c fiber.Ctx, kind string, snap controller.Snapshot, renderFn func() ([]byte, error)) error {
	etag := h.charts.ETag(kind, snap.Key)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderETag, etag)

	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	data, err := renderFn()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

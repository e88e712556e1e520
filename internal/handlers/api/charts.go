package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"launchdash/internal/analytics"
	"launchdash/internal/controller"
	"launchdash/internal/validation"
)

// ChartHandler returns chart series as JSON.
type ChartHandler struct {
	ctrl     *controller.Controller
	producer *analytics.Producer
}

// NewChartHandler creates a new API chart handler.
func NewChartHandler(ctrl *controller.Controller, producer *analytics.Producer) *ChartHandler {
	return &ChartHandler{ctrl: ctrl, producer: producer}
}

// Pie returns the pie series for the current selection.
func (h *ChartHandler) Pie(c fiber.Ctx) error {
	return jsonSuccess(c, h.ctrl.Current().Pie)
}

// Scatter returns the scatter series for the current selection.
func (h *ChartHandler) Scatter(c fiber.Ctx) error {
	return jsonSuccess(c, h.ctrl.Current().Scatter)
}

// Preview computes both series for the selection given in the query string
// without touching the shared selection. Missing parameters fall back to all
// sites and the full payload range.
func (h *ChartHandler) Preview(c fiber.Ctx) error {
	update, err := validation.ParseSelectionUpdate(c.Query("site"), c.Query("low"), c.Query("high"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, CodeBadRequest, err.Error())
	}

	sel := h.producer.Store().DefaultSelection()
	if update.Site != nil {
		sel.Site = *update.Site
	}
	if update.PayloadRange != nil {
		sel.PayloadRange = *update.PayloadRange
	}

	snap, err := controller.Compute(h.producer, sel.Site, sel.PayloadRange)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidRange) {
			return jsonError(c, fiber.StatusUnprocessableEntity, CodeInvalidRange, "payload range low must not exceed high")
		}
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to compute charts")
	}

	return jsonSuccess(c, snap.Response())
}

package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"launchdash/internal/analytics"
	"launchdash/internal/controller"
	"launchdash/internal/metrics"
	"launchdash/internal/models"
	"launchdash/internal/validation"
)

// SelectionHandler exposes the shared selection as JSON.
type SelectionHandler struct {
	ctrl *controller.Controller
}

// NewSelectionHandler creates a new API selection handler.
func NewSelectionHandler(ctrl *controller.Controller) *SelectionHandler {
	return &SelectionHandler{ctrl: ctrl}
}

// Get returns the current selection and its chart series.
func (h *SelectionHandler) Get(c fiber.Ctx) error {
	return jsonSuccess(c, h.ctrl.Current().Response())
}

// Update applies a partial selection. Omitted fields keep their values.
func (h *SelectionHandler) Update(c fiber.Ctx) error {
	var update models.SelectionUpdate
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		return jsonError(c, fiber.StatusBadRequest, CodeBadRequest, "invalid request body")
	}

	if update.Site != nil {
		site := validation.NormalizeSite(*update.Site)
		if !validation.ValidateSite(site) {
			return jsonError(c, fiber.StatusBadRequest, CodeInvalidSite, "invalid site")
		}
		update.Site = &site
	}

	snap, err := h.ctrl.OnSelectionChanged(update)
	metrics.RecordSelectionResult(update.Kind(), err)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidRange) {
			return jsonError(c, fiber.StatusUnprocessableEntity, CodeInvalidRange, "payload range low must not exceed high")
		}
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to apply selection")
	}

	return jsonSuccess(c, snap.Response())
}

package handlers

import (
	"errors"

	"launchdash/internal/analytics"
	"launchdash/internal/controller"
	"launchdash/internal/metrics"
	"launchdash/internal/models"
	"launchdash/internal/validation"
)

// applySelection forwards an update to the controller and counts the result.
func applySelection(ctrl *controller.Controller, update models.SelectionUpdate) (controller.Snapshot, error) {
	snap, err := ctrl.OnSelectionChanged(update)
	metrics.RecordSelectionResult(update.Kind(), err)
	return snap, err
}

// selectionErrorMessage turns a rejected update into text for the page.
func selectionErrorMessage(err error) string {
	switch {
	case errors.Is(err, analytics.ErrInvalidRange):
		return "The payload range is invalid: the lower bound must not exceed the upper bound."
	case errors.Is(err, validation.ErrPartialRange):
		return "Both payload bounds are required."
	case errors.Is(err, validation.ErrInvalidNumber):
		return "Payload bounds must be numbers."
	case errors.Is(err, validation.ErrInvalidSite):
		return "The selected launch site is invalid."
	default:
		return "The selection could not be applied."
	}
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"launchdash/internal/analytics"
	"launchdash/internal/config"
	"launchdash/internal/controller"
	"launchdash/internal/dataset"
	"launchdash/internal/middleware"
	"launchdash/internal/render"
	"launchdash/internal/validation"
)

// SiteOption is one dropdown entry.
type SiteOption struct {
	Value    string
	Label    string
	Selected bool
}

// DashboardHandler serves the dashboard page and its selection form.
type DashboardHandler struct {
	ctrl   *controller.Controller
	store  *dataset.Store
	cfg    *config.Config
	layout *config.YAMLConfig
}

// NewDashboardHandler creates a new dashboard handler. layout may be nil.
func NewDashboardHandler(ctrl *controller.Controller, store *dataset.Store, cfg *config.Config, layout *config.YAMLConfig) *DashboardHandler {
	return &DashboardHandler{ctrl: ctrl, store: store, cfg: cfg, layout: layout}
}

// Index renders the dashboard for the current selection.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		snap = h.ctrl.Current()
	}
	return c.Render("dashboard", h.pageData(snap, ""))
}

// Update applies the submitted form and redirects back to the dashboard.
// Rejected input re-renders the page with the previous selection.
func (h *DashboardHandler) Update(c fiber.Ctx) error {
	update, err := validation.ParseSelectionUpdate(c.FormValue("site"), c.FormValue("low"), c.FormValue("high"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("dashboard", h.pageData(h.ctrl.Current(), selectionErrorMessage(err)))
	}

	snap, err := applySelection(h.ctrl, update)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidRange) {
			return c.Status(fiber.StatusUnprocessableEntity).Render("dashboard", h.pageData(snap, selectionErrorMessage(err)))
		}
		return err
	}

	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (h *DashboardHandler) pageData(snap controller.Snapshot, errMsg string) fiber.Map {
	var options []SiteOption
	for _, o := range h.layout.SiteOptions(h.store.KnownSites()) {
		options = append(options, SiteOption{
			Value:    o.Name,
			Label:    o.Label,
			Selected: o.Name == snap.Selection.Site,
		})
	}

	lo, hi := h.store.PayloadBounds()
	key := snap.Key.String()

	return fiber.Map{
		"Title":        h.cfg.SiteTitle,
		"SiteTitle":    h.cfg.SiteTitle,
		"SiteFooter":   h.cfg.SiteFooter,
		"Selection":    snap.Selection,
		"Window":       snap.Window,
		"SiteOptions":  options,
		"Slider":       h.layout.GetSlider(),
		"PayloadMin":   lo,
		"PayloadMax":   hi,
		"Pie":          snap.Pie,
		"PieTitle":     render.PieTitle(snap.Selection.Site),
		"PieURL":       "/charts/pie.png?v=" + key,
		"ScatterCount": len(snap.Scatter),
		"ScatterTitle": render.ScatterTitle(snap.Selection.Site),
		"ScatterURL":   "/charts/scatter.png?v=" + key,
		"Error":        errMsg,
	}
}

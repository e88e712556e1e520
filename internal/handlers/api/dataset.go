package api

import (
	"github.com/gofiber/fiber/v3"

	"launchdash/internal/dataset"
	"launchdash/internal/models"
)

// DatasetHandler describes the loaded launch table.
type DatasetHandler struct {
	store *dataset.Store
}

// NewDatasetHandler creates a new API dataset handler.
func NewDatasetHandler(store *dataset.Store) *DatasetHandler {
	return &DatasetHandler{store: store}
}

// Get returns record counts, sites and the payload bounds.
func (h *DatasetHandler) Get(c fiber.Ctx) error {
	sites := h.store.KnownSites()
	successes := make(map[string]int, len(sites))
	for _, site := range sites {
		successes[site] = h.store.SuccessCount(site)
	}

	return jsonSuccess(c, models.DatasetResponse{
		Records:      h.store.Len(),
		Sites:        sites,
		PayloadRange: h.store.FullRange(),
		Successes:    successes,
	})
}

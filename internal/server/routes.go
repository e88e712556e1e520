package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"launchdash/internal/analytics"
	"launchdash/internal/cache"
	"launchdash/internal/config"
	"launchdash/internal/controller"
	"launchdash/internal/handlers"
	"launchdash/internal/handlers/api"
	"launchdash/internal/middleware"
)

// Deps are the services the routes are built on.
type Deps struct {
	Producer   *analytics.Producer
	Controller *controller.Controller
	Charts     *cache.Charts
	Layout     *config.YAMLConfig // optional
	DB         handlers.Pinger    // optional, checked by /readyz
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	store := deps.Producer.Store()

	// Initialize middleware
	snapshot := middleware.NewSnapshotMiddleware(deps.Controller)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(deps.Controller, store, s.Cfg, deps.Layout)
	chartHandler := handlers.NewChartHandler(deps.Controller, deps.Charts)
	probeHandler := handlers.NewProbeHandler(deps.DB)

	apiSelection := api.NewSelectionHandler(deps.Controller)
	apiCharts := api.NewChartHandler(deps.Controller, deps.Producer)
	apiDataset := api.NewDatasetHandler(store)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Dashboard
	s.App.Get("/", snapshot.Load, dashboardHandler.Index)
	s.App.Post("/selection", dashboardHandler.Update)
	s.App.Get("/charts/pie.png", snapshot.Load, chartHandler.Pie)
	s.App.Get("/charts/scatter.png", snapshot.Load, chartHandler.Scatter)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/selection", apiSelection.Get)
	apiGroup.Patch("/selection", apiSelection.Update)
	apiGroup.Get("/charts/pie", apiCharts.Pie)
	apiGroup.Get("/charts/scatter", apiCharts.Scatter)
	apiGroup.Get("/preview", apiCharts.Preview)
	apiGroup.Get("/dataset", apiDataset.Get)
}

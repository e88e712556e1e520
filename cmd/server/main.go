package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"launchdash/internal/analytics"
	"launchdash/internal/cache"
	"launchdash/internal/config"
	"launchdash/internal/controller"
	"launchdash/internal/dataset"
	"launchdash/internal/handlers"
	"launchdash/internal/jobs"
	"launchdash/internal/logging"
	"launchdash/internal/metrics"
	"launchdash/internal/models"
	"launchdash/internal/render"
	"launchdash/internal/server"
	"launchdash/internal/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logger := logging.New("main")

	layout, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Load the launch table
	store, database, err := source.Load(ctx, cfg)
	if err != nil {
		if errors.Is(err, dataset.ErrEmptyDataset) {
			log.Fatalf("Dataset has no launch records: %v", err)
		}
		log.Fatalf("Failed to load dataset: %v", err)
	}
	var pinger handlers.Pinger
	if database != nil {
		defer database.Close()
		pinger = database
	}
	logger.Info("dataset loaded",
		"source", cfg.DatasetSource,
		"records", store.Len(),
		"sites", len(store.KnownSites()),
	)

	metrics.Init(store)

	producer := analytics.NewProducer(store, analytics.WithPiePayloadFilter(cfg.PieApplyPayloadFilter))
	ctrl, err := controller.New(producer, logging.New("controller"), controller.SinkFunc(func(s controller.Snapshot) {
		metrics.ObserveSeries(len(s.Pie), len(s.Scatter))
	}))
	if err != nil {
		log.Fatalf("Failed to compute initial charts: %v", err)
	}

	if site := layout.GetDefaultSite(); site != models.SiteAll {
		if _, err := ctrl.OnSelectionChanged(models.SelectionUpdate{Site: &site}); err != nil {
			log.Fatalf("Failed to apply default site %q: %v", site, err)
		}
	}

	// Chart cache and rate limiter share Redis when configured
	ns := cache.Namespace(store, cfg.PieApplyPayloadFilter)
	var limiterStore fiber.Storage
	var chartCache *cache.ChartCache
	if cfg.CacheEnabled() {
		redisStore, err := cache.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		limiterStore = redisStore
		chartCache = cache.New(redisStore, ns, cfg.ChartCacheTTL, logging.New("cache"))
		defer chartCache.Close()
		logger.Info("chart cache enabled", "ttl", cfg.ChartCacheTTL)
	}
	charts := &cache.Charts{
		Renderer:  render.New(logging.New("render")),
		Cache:     chartCache,
		Namespace: ns,
	}

	srv := server.New(cfg, limiterStore)
	srv.RegisterRoutes(server.Deps{
		Producer:   producer,
		Controller: ctrl,
		Charts:     charts,
		Layout:     layout,
		DB:         pinger,
	})

	g, gctx := errgroup.WithContext(ctx)

	if chartCache != nil {
		warmer := jobs.NewChartWarmer(producer, charts, cfg.ChartWarmInterval, logging.New("warmer"))
		g.Go(func() error {
			warmer.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server exited")
}

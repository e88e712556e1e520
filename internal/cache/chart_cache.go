// Package cache keeps rendered chart images in a shared key-value store.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"

	"launchdash/internal/dataset"
	"launchdash/internal/metrics"
	"launchdash/internal/models"
	"launchdash/internal/render"
)

// Chart kinds used in cache keys.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
)

// Storage is the subset of a Fiber storage backend the cache needs.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Close() error
}

// ErrStorageUnavailable means the chart store could not be reached at startup.
var ErrStorageUnavailable = errors.New("chart storage unavailable")

// NewRedisStorage connects to Redis at url and pings it. The storage package
// panics on a bad URL or an unreachable server; that is reported as
// ErrStorageUnavailable instead.
func NewRedisStorage(url string) (store *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			store = nil
			err = fmt.Errorf("%w: %v", ErrStorageUnavailable, r)
		}
	}()
	return redis.New(redis.Config{URL: url}), nil
}

// Namespace scopes cached charts and their ETags to the loaded data and the
// options that change what gets drawn.
func Namespace(store *dataset.Store, piePayloadFilter bool) string {
	ns := store.Fingerprint().String()
	if piePayloadFilter {
		ns += "-pf"
	}
	return ns
}

// ChartCache stores rendered images under namespace-qualified keys. A nil
// cache or one without storage renders on every call.
type ChartCache struct {
	store     Storage
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// New creates a chart cache. namespace should change whenever the dataset or
// rendering options change.
func New(store Storage, namespace string, ttl time.Duration, logger *slog.Logger) *ChartCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartCache{store: store, namespace: namespace, ttl: ttl, logger: logger}
}

// Key returns the storage key for a chart kind and selection key.
func (c *ChartCache) Key(kind string, key uuid.UUID) string {
	return "launchdash:" + c.namespace + ":" + kind + ":" + key.String()
}

// GetOrRender returns the cached image, or renders and stores it. Storage
// failures are logged and never fail the request.
func (c *ChartCache) GetOrRender(kind string, key uuid.UUID, renderFn func() ([]byte, error)) ([]byte, error) {
	if c == nil || c.store == nil {
		return renderFn()
	}

	k := c.Key(kind, key)
	data, err := c.store.Get(k)
	if err != nil {
		c.logger.Warn("chart cache get failed", "key", k, "error", err)
	}
	if len(data) > 0 {
		metrics.RecordCacheLookup(kind, metrics.CacheHit)
		return data, nil
	}
	metrics.RecordCacheLookup(kind, metrics.CacheMiss)

	data, err = renderFn()
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(k, data, c.ttl); err != nil {
		c.logger.Warn("chart cache set failed", "key", k, "error", err)
	}
	return data, nil
}

// Close releases the underlying storage.
func (c *ChartCache) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Charts renders chart images through the cache. Namespace should match the
// cache namespace; it also scopes HTTP validators.
type Charts struct {
	Renderer  *render.Renderer
	Cache     *ChartCache
	Namespace string
}

// ETag returns the HTTP validator for a chart kind and snapshot key.
func (c *Charts) ETag(kind string, key uuid.UUID) string {
	return `"` + kind + "-" + c.Namespace + "-" + key.String() + `"`
}

// PiePNG returns the pie chart image for a snapshot. key identifies the
// filtered series; sel is what the chart is titled with.
func (c *Charts) PiePNG(key uuid.UUID, sel models.Selection, series models.PieSeries) ([]byte, error) {
	return c.Cache.GetOrRender(KindPie, key, func() ([]byte, error) {
		return c.Renderer.Pie(sel, series)
	})
}

// ScatterPNG returns the scatter chart image for a snapshot.
func (c *Charts) ScatterPNG(key uuid.UUID, sel models.Selection, series models.ScatterSeries) ([]byte, error) {
	return c.Cache.GetOrRender(KindScatter, key, func() ([]byte, error) {
		return c.Renderer.Scatter(sel, series)
	})
}

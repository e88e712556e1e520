package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"launchdash/internal/analytics"
	"launchdash/internal/cache"
	"launchdash/internal/controller"
	"launchdash/internal/models"
	"launchdash/internal/render"
	"launchdash/internal/testutil"
)

type countingStorage struct {
	mu   sync.Mutex
	sets map[string]int
}

func (s *countingStorage) Get(string) ([]byte, error) { return nil, nil }

func (s *countingStorage) Set(key string, _ []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[key]++
	return nil
}

func (s *countingStorage) Close() error { return nil }

func TestChartWarmer_Selections(t *testing.T) {
	producer := analytics.NewProducer(testutil.TwoSiteStore(t))
	w := NewChartWarmer(producer, &cache.Charts{Renderer: render.New(nil)}, 0, nil)

	sels := w.Selections()
	if len(sels) != 3 {
		t.Fatalf("len(Selections()) = %d, want 3", len(sels))
	}
	if sels[0].Site != models.SiteAll || sels[1].Site != "A" || sels[2].Site != "B" {
		t.Errorf("Selections() sites = %v", sels)
	}
	for _, s := range sels {
		if s.PayloadRange != producer.Store().FullRange() {
			t.Errorf("selection %s range = %+v, want full range", s.Site, s.PayloadRange)
		}
	}
}

func TestChartWarmer_WarmAllFillsCache(t *testing.T) {
	storage := &countingStorage{sets: map[string]int{}}
	chartCache := cache.New(storage, "test", time.Minute, nil)
	charts := &cache.Charts{Renderer: render.New(nil), Cache: chartCache}
	w := NewChartWarmer(analytics.NewProducer(testutil.TwoSiteStore(t)), charts, 0, nil)

	if got := w.WarmAll(context.Background()); got != 3 {
		t.Errorf("WarmAll() = %d, want 3", got)
	}
	for _, sel := range w.Selections() {
		for _, kind := range []string{cache.KindPie, cache.KindScatter} {
			if storage.sets[chartCache.Key(kind, sel.Key())] != 1 {
				t.Errorf("%s chart for %s not stored", kind, sel.Site)
			}
		}
	}
}

func TestChartWarmer_KeysMatchServedSnapshots(t *testing.T) {
	storage := &countingStorage{sets: map[string]int{}}
	chartCache := cache.New(storage, "test", time.Minute, nil)
	producer := analytics.NewProducer(testutil.TwoSiteStore(t))
	w := NewChartWarmer(producer, &cache.Charts{Renderer: render.New(nil), Cache: chartCache}, 0, nil)
	w.WarmAll(context.Background())

	ctrl, err := controller.New(producer, nil)
	if err != nil {
		t.Fatalf("controller.New() error = %v", err)
	}
	site := "A"
	snap, err := ctrl.OnSelectionChanged(models.SelectionUpdate{Site: &site})
	if err != nil {
		t.Fatalf("OnSelectionChanged() error = %v", err)
	}
	if storage.sets[chartCache.Key(cache.KindScatter, snap.Key)] != 1 {
		t.Error("warmed scatter chart is not stored under the key the dashboard serves")
	}
}

func TestChartWarmer_CancelledContext(t *testing.T) {
	w := NewChartWarmer(analytics.NewProducer(testutil.TwoSiteStore(t)), &cache.Charts{Renderer: render.New(nil)}, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := w.WarmAll(ctx); got != 0 {
		t.Errorf("WarmAll() on cancelled context = %d, want 0", got)
	}

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancellation")
	}
}

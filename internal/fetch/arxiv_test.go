package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/cache"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/worker"
)

const testAtomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2401.00001v1</id>
    <title>Transit Photometry of a Temperate Sub-Neptune</title>
    <summary>We report an orbital period of 14.7 days and a radius of 1.8 Earth radii.</summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2401.00002v1</id>
    <title>Atmospheric Retrieval Methods</title>
    <summary>A comparison of retrieval frameworks for exoplanet spectra.</summary>
  </entry>
</feed>`

func newArxivTestClient(demoMode bool, store cache.Cache) *ArxivClient {
	cfg := testFetchConfig()
	cfg.DemoMode = demoMode
	limiter := worker.NewLimiter(100, 10)
	return NewArxivClient(cfg, limiter, store)
}

func TestArxiv_DemoModeStaysOffline(t *testing.T) {
	c := newArxivTestClient(true, nil)
	// Unroutable base URL: any network attempt would fail loudly.
	c.baseURL = "http://127.0.0.1:0"

	items := c.FetchLatest(context.Background(), "all:exoplanet", 5)

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 mock", len(items))
	}
	if items[0].ID != "arxiv_demo_1" || items[0].Source != "arxiv_mock" {
		t.Errorf("unexpected mock item: %+v", items[0])
	}
}

func TestArxiv_ParsesAtomFeed(t *testing.T) {
	var queries atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries.Add(1)
		if got := r.URL.Query().Get("search_query"); got != "all:exoplanet" {
			t.Errorf("search_query = %q", got)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(testAtomFeed))
	}))
	defer srv.Close()

	c := newArxivTestClient(false, nil)
	c.baseURL = srv.URL

	items := c.FetchLatest(context.Background(), "all:exoplanet", 5)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.Title != "Transit Photometry of a Temperate Sub-Neptune" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Source != "arxiv" {
		t.Errorf("Source = %q", first.Source)
	}
	if !strings.HasPrefix(first.ID, "arxiv_") || len(first.ID) != len("arxiv_")+12 {
		t.Errorf("ID = %q, want arxiv_ prefix plus 12 hex chars", first.ID)
	}
	if !strings.Contains(first.Raw, "orbital period of 14.7 days") {
		t.Errorf("Raw missing summary text: %q", first.Raw)
	}
	if !strings.HasPrefix(first.Raw, first.Title) {
		t.Errorf("Raw should start with the title: %q", first.Raw)
	}
	if queries.Load() != 1 {
		t.Errorf("server hit %d times, want 1", queries.Load())
	}
}

func TestArxiv_StableIDs(t *testing.T) {
	a := safeArxivID("http://arxiv.org/abs/2401.00001v1")
	b := safeArxivID("http://arxiv.org/abs/2401.00001v1")
	c := safeArxivID("http://arxiv.org/abs/2401.00002v1")

	if a != b {
		t.Errorf("same entry produced different ids: %q vs %q", a, b)
	}
	if a == c {
		t.Error("distinct entries produced the same id")
	}
}

func TestArxiv_FallsBackToMockOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newArxivTestClient(false, nil)
	c.baseURL = srv.URL

	items := c.FetchLatest(context.Background(), "all:exoplanet", 5)
	if len(items) != 1 || items[0].ID != "arxiv_demo_1" {
		t.Errorf("expected mock fallback, got %+v", items)
	}
}

func TestArxiv_FallsBackToMockOnBadXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<feed><entry>truncated"))
	}))
	defer srv.Close()

	c := newArxivTestClient(false, nil)
	c.baseURL = srv.URL

	items := c.FetchLatest(context.Background(), "all:exoplanet", 5)
	if len(items) != 1 || items[0].ID != "arxiv_demo_1" {
		t.Errorf("expected mock fallback, got %+v", items)
	}
}

func TestArxiv_ServesSecondFetchFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testAtomFeed))
	}))
	defer srv.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := newArxivTestClient(false, store)
	c.baseURL = srv.URL

	first := c.FetchLatest(context.Background(), "all:exoplanet", 5)
	second := c.FetchLatest(context.Background(), "all:exoplanet", 5)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d then %d items, want 2 and 2", len(first), len(second))
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1 (second fetch cached)", hits.Load())
	}
}

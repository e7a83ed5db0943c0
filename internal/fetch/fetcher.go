// Package fetch supplies raw items to the pipeline. The default demo
// configuration is fully offline: local sample files plus mocked API
// payloads. Live sources degrade to mocks or skip on any failure so a
// fetch run never fails as a whole.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/cache"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/worker"
)

// Fetcher multiplexes the configured item sources.
type Fetcher struct {
	cfg   model.FetchConfig
	arxiv *ArxivClient
	nasa  *NASAClient
	web   *WebClient
}

// New creates a Fetcher. The cache may be nil to disable fetch caching;
// all live sources share one per-host rate limiter.
func New(cfg model.FetchConfig, store cache.Cache) *Fetcher {
	limiter := worker.NewLimiter(cfg.RatePerSecond, cfg.RateBurst)
	return &Fetcher{
		cfg:   cfg,
		arxiv: NewArxivClient(cfg, limiter, store),
		nasa:  NewNASAClient(cfg, limiter, store),
		web:   NewWebClient(cfg, limiter, store),
	}
}

// Run fetches items from the named sources ("local", "arxiv",
// "nasa_apod", "nasa_mission", "web"), deduplicated by id in first-seen
// order. Nil sources falls back to the configured list, then to local
// samples only.
func (f *Fetcher) Run(ctx context.Context, sources []string) []model.Item {
	if sources == nil {
		sources = f.cfg.Sources
	}
	if len(sources) == 0 {
		sources = []string{"local"}
	}

	var results []model.Item
	for _, src := range sources {
		switch src {
		case "local":
			results = append(results, f.fetchLocalSamples()...)
		case "arxiv":
			results = append(results, f.arxiv.FetchLatest(ctx, f.cfg.ArxivQuery, f.cfg.ArxivMaxResults)...)
		case "nasa_apod":
			results = append(results, f.nasa.FetchAPOD(ctx))
		case "nasa_mission":
			results = append(results, f.nasa.FetchMission(ctx, "JWST"))
		case "web":
			for _, u := range f.cfg.URLs {
				item, err := f.web.FetchURL(ctx, u)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: web fetch skipped %s: %v\n", u, err)
					continue
				}
				results = append(results, item)
			}
		default:
			fmt.Fprintf(os.Stderr, "Warning: unknown source: %s\n", src)
		}
	}

	return dedupeByID(results)
}

func dedupeByID(items []model.Item) []model.Item {
	seen := make(map[string]bool, len(items))
	unique := make([]model.Item, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		unique = append(unique, item)
	}
	return unique
}

// Package pipeline orchestrates the full cycle:
// fetch -> analyze -> evaluate -> summarize -> memory.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/analyze"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/cache"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/evaluate"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/fetch"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/memory"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/summarize"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/worker"
)

// Pipeline wires the agents together for repeated runs.
type Pipeline struct {
	cfg        *model.Config
	fetcher    *fetch.Fetcher
	analyzer   *analyze.Analyzer
	evaluator  *evaluate.Evaluator
	summarizer *summarize.Summarizer
	store      *memory.Store
}

// New builds a pipeline from config. A misconfigured remote summarizer
// degrades to the local summarizer with a warning rather than failing
// construction.
func New(cfg *model.Config) (*Pipeline, error) {
	var fetchCache cache.Cache
	if cfg.Cache.Enabled {
		fetchCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	summarizer, err := summarize.NewSummarizer(summarize.ConfigFromModel(cfg.LLM))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: summarizer provider unavailable, using local summaries: %v\n", err)
		summarizer, _ = summarize.NewSummarizer(summarize.Config{})
	}

	store, err := memory.NewStore(cfg.Memory.Path)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}

	return &Pipeline{
		cfg: cfg,
		fetcher: fetch.New(cfg.Fetch, fetchCache),
		analyzer: analyze.New(analyze.Config{
			Keywords:        cfg.Analyze.Keywords,
			MinClaimLength:  cfg.Analyze.MinClaimLength,
			MaxSnippetChars: cfg.Analyze.MaxSnippetChars,
		}),
		evaluator:  evaluate.New(cfg.Evaluate.Threshold, cfg.Evaluate.Weights),
		summarizer: summarizer,
		store:      store,
	}, nil
}

// ProcessItem runs one item through analyze -> evaluate and, when it
// passes the threshold, summarize -> store. Implements worker.Processor.
func (p *Pipeline) ProcessItem(ctx context.Context, item model.Item) (*model.RunEntry, error) {
	analyzed := p.analyzer.AnalyzeItem(item)
	evaluation := p.evaluator.Score(analyzed)

	score := evaluation.Score
	entry := &model.RunEntry{
		ID:     item.ID,
		Title:  item.Title,
		Score:  &score,
		Passed: evaluation.PassedThreshold,
	}

	if !evaluation.PassedThreshold {
		return entry, nil
	}

	summary := p.summarizer.Summarize(ctx, item, analyzed.Analysis)
	entry.Summary = summary

	err := p.store.Store(item.ID, model.StoredData{
		Summary:    summary,
		Analysis:   &analyzed.Analysis,
		Evaluation: &evaluation,
		Raw:        item.Raw,
	})
	if err != nil {
		return entry, fmt.Errorf("store %s: %w", item.ID, err)
	}
	return entry, nil
}

// RunOnce executes one full cycle and writes its run log to the output
// dir. The cycle itself is best-effort per item: a failing item is logged
// and the rest proceed.
func (p *Pipeline) RunOnce(ctx context.Context) (*model.RunLog, error) {
	start := time.Now().UTC().Format(time.RFC3339)

	items := p.fetcher.Run(ctx, nil)
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Fetched %d item(s)\n", len(items))
	}

	runLog := &model.RunLog{
		Timestamp: start,
		Steps:     []string{fmt.Sprintf("Fetched %d items", len(items))},
		Items:     []model.RunEntry{},
	}

	workers := p.cfg.Concurrency.Workers
	if workers <= 0 {
		workers = 1
	}
	results := worker.NewBatchProcessor(p, workers).ProcessItems(ctx, items)

	processed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			runLog.Items = append(runLog.Items, model.RunEntry{ID: res.ID, Error: res.Err.Error()})
		case res.Entry != nil:
			runLog.Items = append(runLog.Items, *res.Entry)
			if res.Entry.Passed {
				processed++
			}
		}
	}
	runLog.ProcessedItems = processed

	if err := p.store.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: memory compaction failed: %v\n", err)
	}

	logPath, err := p.saveRunLog(runLog)
	if err != nil {
		return runLog, err
	}
	if err := p.updateSessionState(logPath, start, processed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session state update failed: %v\n", err)
	}

	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Cycle complete: %d/%d items processed, log at %s\n", processed, len(items), logPath)
	}
	return runLog, nil
}

// RunContinuous runs multiple cycles with a pause between them, keeping
// session_state.json current after each run.
func (p *Pipeline) RunContinuous(ctx context.Context, iterations int, interval time.Duration) (*model.SessionState, error) {
	session := &model.SessionState{IterationsRequested: iterations}

	for i := 0; i < iterations; i++ {
		if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Starting iteration %d/%d\n", i+1, iterations)
		}

		runLog, err := p.RunOnce(ctx)
		if err != nil {
			return session, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		session.Runs++
		session.TotalProcessed += runLog.ProcessedItems

		if err := p.saveSession(session); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: session snapshot failed: %v\n", err)
		}

		if i < iterations-1 {
			select {
			case <-ctx.Done():
				return session, ctx.Err()
			case <-time.After(interval):
			}
		}
	}
	return session, nil
}

// Store exposes the memory store for the search command.
func (p *Pipeline) Store() *memory.Store {
	return p.store
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

const richSample = "The exoplanet K2-18b, located 124 light-years away, was observed using Hubble. " +
	"The planet has a radius of approximately 2.6 times that of Earth and an orbital period of 33 days. " +
	"Methods included transit spectroscopy over 8 transits."

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	root := t.TempDir()

	samples := filepath.Join(root, "samples")
	if err := os.Mkdir(samples, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Fetch.Sources = []string{"local"}
	cfg.Fetch.SamplesDir = samples
	cfg.Memory.Path = filepath.Join(root, "memory.json")
	cfg.Output.Dir = filepath.Join(root, "outputs")
	cfg.Cache.Enabled = false
	cfg.Concurrency.Workers = 2
	return cfg
}

func writeSample(t *testing.T, cfg *model.Config, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cfg.Fetch.SamplesDir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessItem_PassingItemStored(t *testing.T) {
	cfg := testConfig(t)
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	item := model.Item{ID: "rich.txt", Title: "rich", Source: "local_file", Raw: richSample}
	entry, err := p.ProcessItem(context.Background(), item)
	if err != nil {
		t.Fatalf("ProcessItem: %v", err)
	}

	if !entry.Passed {
		t.Fatalf("rich item did not pass: score=%v", *entry.Score)
	}
	if entry.Score == nil || *entry.Score < cfg.Evaluate.Threshold {
		t.Errorf("Score = %v", entry.Score)
	}
	if entry.Summary == "" {
		t.Error("passing item has no summary")
	}

	rec, ok := p.Store().Get("rich.txt")
	if !ok {
		t.Fatal("passing item not in memory store")
	}
	if rec.Data.Summary != entry.Summary {
		t.Error("stored summary differs from run entry summary")
	}
	if rec.Data.Analysis == nil || rec.Data.Evaluation == nil {
		t.Error("stored record missing analysis or evaluation")
	}
	if rec.Data.Raw != richSample {
		t.Error("raw text not stored before compaction")
	}
}

func TestProcessItem_FailingItemNotStored(t *testing.T) {
	cfg := testConfig(t)
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	item := model.Item{ID: "thin.txt", Title: "thin", Source: "local_file", Raw: "Too short."}
	entry, err := p.ProcessItem(context.Background(), item)
	if err != nil {
		t.Fatalf("ProcessItem: %v", err)
	}

	if entry.Passed {
		t.Error("two-word item passed the threshold")
	}
	if entry.Summary != "" {
		t.Error("failing item was summarized")
	}
	if _, ok := p.Store().Get("thin.txt"); ok {
		t.Error("failing item was stored")
	}
}

func TestRunOnce(t *testing.T) {
	cfg := testConfig(t)
	writeSample(t, cfg, "a_rich.txt", richSample)
	writeSample(t, cfg, "b_thin.txt", "Too short.")

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	runLog, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if runLog.ProcessedItems != 1 {
		t.Errorf("ProcessedItems = %d, want 1", runLog.ProcessedItems)
	}
	if len(runLog.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(runLog.Items))
	}
	// Batch results come back sorted by id.
	if runLog.Items[0].ID != "a_rich.txt" || runLog.Items[1].ID != "b_thin.txt" {
		t.Errorf("items out of order: %q, %q", runLog.Items[0].ID, runLog.Items[1].ID)
	}
	if !runLog.Items[0].Passed || runLog.Items[1].Passed {
		t.Errorf("pass flags wrong: %+v", runLog.Items)
	}
	if len(runLog.Steps) == 0 || !strings.Contains(runLog.Steps[0], "Fetched 2 items") {
		t.Errorf("Steps = %v", runLog.Steps)
	}

	// The stored record is compacted at end of cycle.
	rec, ok := p.Store().Get("a_rich.txt")
	if !ok {
		t.Fatal("rich item missing from memory store")
	}
	if rec.Data.Raw != "" {
		t.Error("raw text survived compaction")
	}
	if rec.Data.Summary == "" {
		t.Error("compaction removed the summary")
	}

	// Run log and session state land in the output dir.
	entries, err := os.ReadDir(cfg.Output.Dir)
	if err != nil {
		t.Fatal(err)
	}
	var haveRunLog, haveSession bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "run_") && strings.HasSuffix(e.Name(), ".json") {
			haveRunLog = true
		}
		if e.Name() == "session_state.json" {
			haveSession = true
		}
	}
	if !haveRunLog {
		t.Error("run log file not written")
	}
	if !haveSession {
		t.Error("session_state.json not written")
	}
}

func TestRunOnce_RerunUpsertsNotDuplicates(t *testing.T) {
	cfg := testConfig(t)
	writeSample(t, cfg, "a_rich.txt", richSample)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if _, err := p.RunOnce(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	if got := len(p.Store().All()); got != 1 {
		t.Errorf("store holds %d records after two runs, want 1", got)
	}
}

func TestRunOnce_EmptySamplesDir(t *testing.T) {
	cfg := testConfig(t)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	runLog, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce on empty dir: %v", err)
	}
	if runLog.ProcessedItems != 0 || len(runLog.Items) != 0 {
		t.Errorf("run log not empty: %+v", runLog)
	}
}

func TestRunContinuous(t *testing.T) {
	cfg := testConfig(t)
	writeSample(t, cfg, "a_rich.txt", richSample)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	session, err := p.RunContinuous(context.Background(), 2, time.Millisecond)
	if err != nil {
		t.Fatalf("RunContinuous: %v", err)
	}

	if session.Runs != 2 {
		t.Errorf("Runs = %d, want 2", session.Runs)
	}
	if session.IterationsRequested != 2 {
		t.Errorf("IterationsRequested = %d, want 2", session.IterationsRequested)
	}
	if session.TotalProcessed != 2 {
		t.Errorf("TotalProcessed = %d, want 2", session.TotalProcessed)
	}
}

func TestRunContinuous_CancelledBetweenIterations(t *testing.T) {
	cfg := testConfig(t)
	writeSample(t, cfg, "a_rich.txt", richSample)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	session, err := p.RunContinuous(ctx, 5, time.Hour)
	if err == nil {
		t.Fatal("expected context error")
	}
	if session.Runs < 1 {
		t.Errorf("Runs = %d, want at least the first iteration", session.Runs)
	}
}

func TestNew_BadProviderDegradesToLocal(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "openai" // no API key in config or env

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New should degrade, not fail: %v", err)
	}

	item := model.Item{ID: "rich.txt", Title: "rich", Raw: richSample}
	entry, err := p.ProcessItem(context.Background(), item)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Summary == "" {
		t.Error("local summarizer fallback produced no summary")
	}
}

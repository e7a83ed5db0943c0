package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/pipeline"
)

var (
	iterations  int
	interval    time.Duration
	sources     []string
	samplesDir  string
	outputDir   string
	memoryPath  string
	threshold   float64
	demoMode    bool
	workers     int
	noCache     bool
	llmProvider string
	llmModel    string
	webURLs     []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for one or more cycles",
	Long: `Run executes full pipeline cycles:
- Fetch items from the configured sources
- Analyze each item (counts, numbers, measurements, keywords, claims)
- Score each item with transparent additive heuristics
- Summarize and persist items that pass the threshold
- Write a per-run JSON log and session state to the output directory

Example:
  ske run
  ske run --iterations 5 --interval 30s
  ske run --sources local,arxiv,nasa_apod --demo=false
  ske run --llm-provider openai --llm-model gpt-4o-mini`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&iterations, "iterations", 1, "number of processing cycles")
	runCmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "pause between cycles")
	runCmd.Flags().StringSliceVar(&sources, "sources", nil, "item sources (local, arxiv, nasa_apod, nasa_mission, web)")
	runCmd.Flags().StringVar(&samplesDir, "samples-dir", "", "directory of local sample files")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for run logs and session state")
	runCmd.Flags().StringVar(&memoryPath, "memory", "", "path of the JSON memory store")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0, "score threshold (0 = configured default)")
	runCmd.Flags().BoolVar(&demoMode, "demo", true, "demo mode: mock all live API calls")
	runCmd.Flags().IntVar(&workers, "workers", 0, "item worker count (0 = configured default)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "summarizer provider (openai, gemini, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "summarizer model name")
	runCmd.Flags().StringSliceVar(&webURLs, "url", nil, "extra page URLs for the web source")
}

// buildConfig resolves defaults < config file/env < flags.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("sources") {
		cfg.Fetch.Sources = sources
	}
	if samplesDir != "" {
		cfg.Fetch.SamplesDir = samplesDir
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if memoryPath != "" {
		cfg.Memory.Path = memoryPath
	}
	if threshold != 0 {
		cfg.Evaluate.Threshold = threshold
	}
	if cmd.Flags().Changed("demo") {
		cfg.Fetch.DemoMode = demoMode
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if len(webURLs) > 0 {
		cfg.Fetch.URLs = append(cfg.Fetch.URLs, webURLs...)
	}
	cfg.Output.Verbose = verbose

	// Secrets come from the environment only.
	cfg.Fetch.NASAAPIKey = os.Getenv("NASA_API_KEY")
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "gemini":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if iterations <= 1 {
		runLog, err := p.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		fmt.Printf("Processed %d/%d item(s)\n", runLog.ProcessedItems, len(runLog.Items))
		return nil
	}

	session, err := p.RunContinuous(ctx, iterations, interval)
	if err != nil {
		return fmt.Errorf("run failed after %d cycle(s): %w", session.Runs, err)
	}
	fmt.Printf("Completed %d cycle(s), %d item(s) processed in total\n", session.Runs, session.TotalProcessed)
	return nil
}

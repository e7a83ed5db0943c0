package model

import "time"

// Config is the full engine configuration. Values are resolved by the CLI
// layer with the usual precedence: flags > SKE_* environment > config file
// (~/.ske/config.yaml) > defaults.
type Config struct {
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Analyze     AnalyzeConfig     `yaml:"analyze" mapstructure:"analyze"`
	Evaluate    EvaluateConfig    `yaml:"evaluate" mapstructure:"evaluate"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Memory      MemoryConfig      `yaml:"memory" mapstructure:"memory"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// FetchConfig controls the item sources.
type FetchConfig struct {
	Sources         []string      `yaml:"sources" mapstructure:"sources"`
	SamplesDir      string        `yaml:"samples_dir" mapstructure:"samples_dir"`
	DemoMode        bool          `yaml:"demo_mode" mapstructure:"demo_mode"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent       string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSecond   float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst       int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	ArxivQuery      string        `yaml:"arxiv_query" mapstructure:"arxiv_query"`
	ArxivMaxResults int           `yaml:"arxiv_max_results" mapstructure:"arxiv_max_results"`
	NASAAPIKey      string        `yaml:"-" mapstructure:"-"` // NASA_API_KEY env only, never persisted
	URLs            []string      `yaml:"urls" mapstructure:"urls"` // Extra pages for the web source
}

// AnalyzeConfig is the analyzer's configuration surface.
type AnalyzeConfig struct {
	Keywords        []string `yaml:"keywords" mapstructure:"keywords"` // Empty = built-in default vocabulary
	MinClaimLength  int      `yaml:"min_claim_length" mapstructure:"min_claim_length"`
	MaxSnippetChars int      `yaml:"max_snippet_chars" mapstructure:"max_snippet_chars"`
}

// Weights are the evaluator's factor weights.
type Weights struct {
	Keyword      float64 `yaml:"keyword" mapstructure:"keyword"`
	NumericBonus float64 `yaml:"numeric_bonus" mapstructure:"numeric_bonus"`
	LengthBonus  float64 `yaml:"length_bonus" mapstructure:"length_bonus"`
	ClaimBonus   float64 `yaml:"claim_bonus" mapstructure:"claim_bonus"`
}

// EvaluateConfig is the evaluator's configuration surface.
type EvaluateConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	Weights   Weights `yaml:"weights" mapstructure:"weights"`
}

// LLMConfig configures the optional remote summarizer. Empty provider
// disables it; the local summarizer is always the fallback.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, gemini, ollama, ""
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // Environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// MemoryConfig locates the JSON memory store.
type MemoryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls the fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls run logs and console output.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig sizes the item worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the built-in defaults. The analyzer keyword list
// defaults to the analyzer package's vocabulary when left empty.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			Sources:         []string{"local"},
			SamplesDir:      "data/samples",
			DemoMode:        true,
			Timeout:         30 * time.Second,
			UserAgent:       "space-knowledge-engine/0.1 (+https://github.com/Jay5Bhatt/space-knowledge-engine)",
			MaxBodyBytes:    2_000_000,
			RatePerSecond:   1.0,
			RateBurst:       3,
			ArxivQuery:      "all:exoplanet",
			ArxivMaxResults: 5,
		},
		Analyze: AnalyzeConfig{
			MinClaimLength:  30,
			MaxSnippetChars: 400,
		},
		Evaluate: EvaluateConfig{
			Threshold: 3.0,
			Weights: Weights{
				Keyword:      2.0,
				NumericBonus: 3.0,
				LengthBonus:  1.0,
				ClaimBonus:   1.5,
			},
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 500,
		},
		Memory: MemoryConfig{
			Path: "data/memory.json",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Dir: "data/demo_outputs",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

package summarize

import "context"

// Provider is a remote summarization backend. The local summarizer is
// always the fallback; providers only improve on it.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a short prose summary of the text.
	Summarize(ctx context.Context, req Request) (*Response, error)

	// IsAvailable reports whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Request is the input for remote summarization.
type Request struct {
	// Text is the raw item text to summarize.
	Text string

	// Model overrides the configured model for this call.
	Model string

	// MaxTokens bounds the response length.
	MaxTokens int
}

// Response is the remote summarizer's output.
type Response struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds remote summarizer configuration.
type Config struct {
	// Provider name: "openai", "gemini", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (Ollama, proxies).
	BaseURL string

	// Timeout in seconds for provider calls.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int
}

// DefaultConfig returns the disabled-by-default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 500,
	}
}

// BuildPrompt is the standard summarization prompt. The phrasing asks
// for findings, not judgments, so the summary stays descriptive.
func BuildPrompt(text string) string {
	return "Summarize the following space research text in 3-4 sentences, " +
		"focusing on the central scientific findings:\n\n" + text
}

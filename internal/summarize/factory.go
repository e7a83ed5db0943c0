package summarize

import (
	"fmt"
	"strings"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// NewProvider creates the configured provider. An empty provider name
// returns (nil, nil): remote summarization disabled, local fallback only.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "gemini":
		return NewGeminiProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider: %s (supported: openai, gemini, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the engine config's LLM section.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

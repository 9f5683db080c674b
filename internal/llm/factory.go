package llm

import (
	"context"
	"fmt"

	"plcortex/internal/config"
)

// NewClient builds a Client for the configured provider.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set llm.api_key in %s or the PLCORTEX_API_KEY environment variable", config.DefaultConfigPath())
	}

	switch cfg.LLM.Provider {
	case "gemini", "":
		return NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLMTimeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (want gemini or openai)", cfg.LLM.Provider)
	}
}

package llms

import (
	"fmt"

	"github.com/umfat/helpdesk/pkg/config"
)

// New creates a provider from config. Both supported types are served by the
// OpenAI-compatible client; the config layer has already resolved the
// endpoint and API-key source per provider.
func New(cfg *config.LLMConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm config cannot be nil")
	}

	switch cfg.Provider {
	case config.LLMProviderOpenAI, config.LLMProviderGemini:
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, gemini)", cfg.Provider)
	}
}

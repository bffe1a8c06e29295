package llm

import (
	"fmt"
	"strings"

	"github.com/ethanbaker/diary/pkg/utils"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewClientFromConfig builds an AI completion client from configuration.
// Returns nil (and no error) when the selected provider has no API key
// configured, which the caller treats as "ingestion disabled"
func NewClientFromConfig(cfg *utils.Config) (Client, error) {
	provider := strings.ToLower(cfg.GetWithDefault("LLM_PROVIDER", ProviderGemini))

	switch provider {
	case ProviderGemini:
		apiKey := cfg.Get("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, nil
		}
		config := DefaultGeminiConfig(apiKey)
		config.Model = cfg.GetWithDefault("GEMINI_MODEL", config.Model)
		return NewGeminiClientWithConfig(config), nil
	case ProviderOpenAI:
		apiKey := cfg.Get("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, nil
		}
		return NewOpenAIClient(apiKey, cfg.Get("OPENAI_MODEL")), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

package factory

import (
	"fmt"

	"docchat-be/internal/apperr"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/llm/gemini"
	"docchat-be/pkg/llm/ollama"
	"docchat-be/pkg/llm/openai"
)

// Config carries the provider-specific settings the factory may need. Only
// the fields for the selected provider are consulted.
type Config struct {
	ModelName     string
	OpenAIKey     string
	GeminiKey     string
	OllamaBaseURL string
}

// NewLLMProvider selects the generation backend once at startup from the
// configured provider name. An unrecognized name fails fast with
// apperr.ErrUnsupportedProvider; requests never re-branch on the string.
func NewLLMProvider(providerType string, cfg Config) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.ModelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(cfg.GeminiKey, cfg.ModelName), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnsupportedProvider, providerType)
	}
}

package llm

import (
	"curator/internal/config"
	"curator/internal/ports"
)

// NewClient picks a completion provider from configuration: OpenAI when its
// key is set, Cohere otherwise. Returns nil when neither is configured; the
// pipeline treats a nil client as "service unavailable".
func NewClient(cfg config.CompletionConfig) ports.CompletionClient {
	if cfg.OpenAI.APIKey != "" {
		return NewOpenAIClient(cfg.OpenAI)
	}
	if cfg.Cohere.APIKey != "" {
		return NewCohereClient(cfg.Cohere)
	}
	return nil
}

package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// NewChatClient creates the chat client for the configured provider.
// Returns the ChatClient interface to enable dependency injection of mocks.
func NewChatClient(cfg *Config, logger *zap.Logger) (ChatClient, error) {
	switch cfg.Provider {
	case "", "openai":
		client, err := NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return client, nil
	case "anthropic":
		client, err := NewAnthropicClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create anthropic client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// NewEmbeddingClient creates the embedding client. Embeddings always go
// through an OpenAI-compatible endpoint regardless of the chat provider.
func NewEmbeddingClient(cfg *Config, logger *zap.Logger) (EmbeddingClient, error) {
	client, err := NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}
	return client, nil
}

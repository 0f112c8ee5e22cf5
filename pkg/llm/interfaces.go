// Package llm provides chat-completion and embedding clients for
// OpenAI-compatible and Anthropic endpoints.
package llm

import (
	"context"
)

// ChatClient is the language-model capability: single-shot prompt in,
// reply text out. Use this interface for dependency injection to enable
// mocking in tests.
type ChatClient interface {
	// GenerateResponse generates a chat completion for the prompt.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// EmbeddingClient is the embedding capability consumed by the vector store.
type EmbeddingClient interface {
	// CreateEmbedding generates an embedding vector for one input.
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)

	// CreateEmbeddings generates embeddings for multiple inputs in one call.
	CreateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)

	// GetModel returns the configured embedding model name.
	GetModel() string
}

// Ensure implementations satisfy the interfaces at compile time.
var (
	_ ChatClient      = (*Client)(nil)
	_ EmbeddingClient = (*Client)(nil)
	_ ChatClient      = (*AnthropicClient)(nil)
	_ ChatClient      = (*MockClient)(nil)
	_ EmbeddingClient = (*MockClient)(nil)
)

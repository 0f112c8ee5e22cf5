package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewChatClient_Providers(t *testing.T) {
	logger := zap.NewNop()

	t.Run("openai default", func(t *testing.T) {
		client, err := NewChatClient(&Config{Endpoint: "http://localhost:11434/v1", Model: "llama3.2"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &Client{}, client)
		assert.Equal(t, "llama3.2", client.GetModel())
	})

	t.Run("anthropic", func(t *testing.T) {
		client, err := NewChatClient(&Config{Provider: "anthropic", Model: "claude-sonnet-4-5", APIKey: "sk-test"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &AnthropicClient{}, client)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewChatClient(&Config{Provider: "bard", Model: "m"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown LLM provider")
	})

	t.Run("missing model", func(t *testing.T) {
		_, err := NewChatClient(&Config{Endpoint: "http://localhost"}, logger)
		assert.Error(t, err)
	})

	t.Run("anthropic requires api key", func(t *testing.T) {
		_, err := NewChatClient(&Config{Provider: "anthropic", Model: "claude-sonnet-4-5"}, logger)
		assert.Error(t, err)
	})
}

func TestNewEmbeddingClient(t *testing.T) {
	client, err := NewEmbeddingClient(&Config{Endpoint: "http://localhost:11434/v1", Model: "nomic-embed-text"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", client.GetModel())
}

package bootstrap

import (
	"testing"

	"rag-kb-be/internal/config"
	"rag-kb-be/pkg/llm/factory"
	"rag-kb-be/pkg/llm/ollama"
	"rag-kb-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMProviderUsesConfiguredHost(t *testing.T) {
	ai := config.AIConfig{
		OpenAIBaseURL: "https://api.openai.com/v1",
		OllamaBaseURL: "http://localhost:11434",
		OpenAIAPIKey:  "key",
		LLMModel:      "gpt-4o",
	}

	t.Run("openai completions target the openai host", func(t *testing.T) {
		ai.LLMProvider = "openai"

		provider, err := factory.NewLLMProvider(ai.LLMProvider, ai.LLMModel, llmBaseURL(&ai), ai.OpenAIAPIKey)
		require.NoError(t, err)

		openaiProvider, ok := provider.(*openai.OpenAIProvider)
		require.True(t, ok)
		assert.Equal(t, "https://api.openai.com/v1", openaiProvider.BaseURL)
	})

	t.Run("ollama completions target the ollama host", func(t *testing.T) {
		ai.LLMProvider = "ollama"

		provider, err := factory.NewLLMProvider(ai.LLMProvider, ai.LLMModel, llmBaseURL(&ai), "")
		require.NoError(t, err)

		ollamaProvider, ok := provider.(*ollama.OllamaProvider)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434", ollamaProvider.BaseURL)
	})
}

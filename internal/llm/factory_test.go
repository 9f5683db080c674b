package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plcortex/internal/config"
)

func TestNewClientRequiresKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = ""

	_, err := NewClient(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewClientOpenAI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "sk-test"
	cfg.LLM.Model = "gpt-4o-mini"

	c, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)

	oc, ok := c.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", oc.Model())
}

func TestNewClientUnknownProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.Provider = "skynet"
	cfg.LLM.APIKey = "key"

	_, err := NewClient(context.Background(), cfg)
	assert.Error(t, err)
}

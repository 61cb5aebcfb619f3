package classifier

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxpost/internal/interpreter"
)

func TestBuildPromptListsAllowedCommands(t *testing.T) {
	prompt := buildPrompt("make it pop", interpreter.CommandTypes())

	assert.Contains(t, prompt, "make it pop")
	for _, tp := range interpreter.CommandTypes() {
		assert.Contains(t, prompt, string(tp))
	}
	assert.Contains(t, prompt, "unknown")
}

func TestParseClassification(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		got, err := parseClassification(`{"command":"change_tone","confidence":0.85,"parameters":{"tone":"casual"}}`)
		require.NoError(t, err)
		assert.Equal(t, "change_tone", got.Type)
		assert.InDelta(t, 0.85, got.Confidence, 1e-9)
		assert.Equal(t, "casual", got.Parameters["tone"])
	})

	t.Run("markdown wrapper", func(t *testing.T) {
		got, err := parseClassification("```json\n{\"command\":\"publish\",\"confidence\":0.9}\n```")
		require.NoError(t, err)
		assert.Equal(t, "publish", got.Type)
	})

	t.Run("confidence clamped", func(t *testing.T) {
		got, err := parseClassification(`{"command":"edit","confidence":3.2}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("no JSON", func(t *testing.T) {
		_, err := parseClassification("I think the user wants to publish.")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseClassification(`{"command": publish}`)
		assert.Error(t, err)
	})
}

func TestExtractJSONBalancesBraces(t *testing.T) {
	in := "prefix {\"a\": {\"b\": 1}} suffix {\"c\": 2}"
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSON(in))
	assert.Equal(t, "", extractJSON("no braces here"))
	assert.Equal(t, "", extractJSON("{unterminated"))
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), Config{}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "API key"))
}

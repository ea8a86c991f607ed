package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"name\":\"Jane\"}"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(&Config{OpenAIAPIKey: "sk-test", OpenAIURL: server.URL + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())

	resp, err := provider.Complete(context.Background(), Request{
		Messages:    PromptMessages("You write resumes.", "Jane"),
		Temperature: 0.4,
		MaxTokens:   1200,
	})
	require.NoError(t, err)

	content, ok := FirstContent(resp)
	require.True(t, ok)
	assert.Equal(t, `{"name":"Jane"}`, content)

	assert.Equal(t, DefaultOpenAIModel, received["model"])
	assert.EqualValues(t, 1200, received["max_tokens"])
	messages, ok := received["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(&Config{OpenAIAPIKey: "sk-test", OpenAIURL: server.URL})
	require.NoError(t, err)

	_, err = provider.Complete(context.Background(), Request{Messages: PromptMessages("", "hi")})
	require.Error(t, err)

	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "openai", providerErr.Provider)
}

func TestOpenAIProvider_RejectsUnknownRole(t *testing.T) {
	provider, err := NewOpenAIProvider(&Config{OpenAIAPIKey: "sk-test"})
	require.NoError(t, err)

	_, err = provider.Complete(context.Background(), Request{Messages: []Message{{Role: "tool", Content: "x"}}})
	assert.ErrorContains(t, err, "unsupported role")

	_, err = provider.Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "messages are required")
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/logging"
)

func testConfig(endpoint string) config.CompletionConfig {
	return config.CompletionConfig{
		Endpoint:    endpoint,
		APIKey:      "test-key",
		Model:       "open-coach-7b",
		Temperature: 0.7,
		TopP:        1.0,
		MaxTokens:   1024,
	}
}

func completionServer(t *testing.T, handler func(body map[string]any) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(handler(body)))
	}))
}

func TestCompleteNotConfigured(t *testing.T) {
	c := NewHTTPClient(config.CompletionConfig{}, logging.Silent())

	_, err := c.Complete(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCompletePlainAnswer(t *testing.T) {
	srv := completionServer(t, func(body map[string]any) string {
		assert.Equal(t, "open-coach-7b", body["model"])
		assert.EqualValues(t, 0.7, body["temperature"])
		assert.EqualValues(t, 1.0, body["top_p"])
		assert.EqualValues(t, 1024, body["max_tokens"])
		_, hasFunctions := body["functions"]
		assert.False(t, hasFunctions)

		return `{
			"model": "open-coach-7b",
			"choices": [{"message": {"role": "assistant", "content": "Hello there"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	resp, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, resp.Message.Role)
	assert.Equal(t, "Hello there", resp.Message.Content)
	assert.Nil(t, resp.Message.ToolCalls)
	assert.Equal(t, 16, resp.Usage.TotalTokens)
}

func TestCompleteAdvertisesFunctions(t *testing.T) {
	srv := completionServer(t, func(body map[string]any) string {
		functions, ok := body["functions"].([]any)
		require.True(t, ok)
		require.Len(t, functions, 1)
		decl := functions[0].(map[string]any)
		assert.Equal(t, "get_goals", decl["name"])

		return `{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
		Functions: []domain.FunctionDeclaration{{
			Name:        "get_goals",
			Description: "Fetch the user's wellness goals",
			Parameters:  map[string]any{"type": "object"},
		}},
	})
	require.NoError(t, err)
}

func TestCompleteStructuredToolCalls(t *testing.T) {
	srv := completionServer(t, func(map[string]any) string {
		return `{
			"choices": [{"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [{"id": "call_1", "function": {"name": "get_health_metrics", "arguments": "{\"metric_type\":\"sleep\"}"}}]
			}}]
		}`
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	resp, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "how did I sleep?"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "", resp.Message.Content)
	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.Message.ToolCalls[0].ID)
	assert.Equal(t, "get_health_metrics", resp.Message.ToolCalls[0].Function.Name)
}

func TestCompleteInBandMarkup(t *testing.T) {
	srv := completionServer(t, func(map[string]any) string {
		content := `<|channel|>commentary to=functions.get_weight <|constrain|>json<|message|>{}<|call|>`
		data, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{
				"role":    "assistant",
				"content": content,
			}}},
		})
		return string(data)
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	resp, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "weight?"}},
	})

	require.NoError(t, err)
	assert.NotContains(t, resp.Message.Content, "<|channel|>")
	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "get_health_metrics", resp.Message.ToolCalls[0].Function.Name)
	assert.JSONEq(t,
		`{"metric_type":"weight","time_period":"current"}`,
		resp.Message.ToolCalls[0].Function.Arguments)
}

func TestCompleteCoercesOddFields(t *testing.T) {
	srv := completionServer(t, func(map[string]any) string {
		return `{"choices": [{"message": {"role": "narrator", "content": {"text": "structured"}}}]}`
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	resp, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, resp.Message.Role)
	assert.JSONEq(t, `{"text": "structured"}`, resp.Message.Content)
}

func TestCompleteNon2xxSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusServiceUnavailable, provErr.Code)
	assert.Contains(t, provErr.Message, "model overloaded")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := completionServer(t, func(map[string]any) string {
		return `{"choices": []}`
	})
	defer srv.Close()

	c := NewHTTPClient(testConfig(srv.URL), logging.Silent())
	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Message, "no choices")
}

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellspring-ai/wellspring/internal/assistant"
	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/convostate"
	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/llm"
	"github.com/wellspring-ai/wellspring/internal/logging"
)

func newTestServer(t *testing.T, client llm.Client, gw config.GatewayConfig) *httptest.Server {
	t.Helper()
	a := assistant.New(
		config.AssistantConfig{MaxToolDepth: 5, MaxAttempts: 1},
		client,
		convostate.NewMemoryStore(),
		nil,
		logging.Silent(),
	)
	srv := New(gw, a, logging.Silent())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func replyClient(text string) *llm.MockClient {
	return &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{
				Message: domain.ChatMessage{Role: domain.RoleAssistant, Content: text},
				Model:   "test-model",
			}, nil
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, replyClient("hi"), config.GatewayConfig{})

	resp, err := http.Get(ts.URL + "/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestChatReturnsReply(t *testing.T) {
	ts := newTestServer(t, replyClient("drink more water"), config.GatewayConfig{})

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"userId":"u1","message":"any hydration tips?"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result assistant.ChatResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "drink more water", result.Reply)
	assert.Equal(t, "test-model", result.Model)
}

func TestChatRejectsEmptyFields(t *testing.T) {
	ts := newTestServer(t, replyClient("hi"), config.GatewayConfig{})

	for name, body := range map[string]string{
		"missing user":    `{"message":"hello"}`,
		"missing message": `{"userId":"u1"}`,
		"blank message":   `{"userId":"u1","message":"   "}`,
		"not json":        `{{{`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/chat", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestChatRequiresTokenWhenConfigured(t *testing.T) {
	ts := newTestServer(t, replyClient("hi"), config.GatewayConfig{Token: "sekrit"})

	body := `{"userId":"u1","message":"hello"}`

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/chat", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer sekrit")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChatNotConfiguredIsServiceUnavailable(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, llm.ErrNotConfigured
		},
	}
	ts := newTestServer(t, client, config.GatewayConfig{})

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"userId":"u1","message":"hello"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthDoesNotRequireToken(t *testing.T) {
	ts := newTestServer(t, replyClient("hi"), config.GatewayConfig{Token: "sekrit"})

	resp, err := http.Get(ts.URL + "/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

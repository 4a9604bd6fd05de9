package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/logging"
	"github.com/wellspring-ai/wellspring/internal/toolcall"
)

// completionTimeout bounds one round trip to the endpoint.
const completionTimeout = 35 * time.Second

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	cfg    config.CompletionConfig
	client *http.Client
	log    *logging.Logger
}

// NewHTTPClient creates a client for the configured endpoint. The config is
// not validated here; a missing endpoint or key fails at Complete time with
// ErrNotConfigured.
func NewHTTPClient(cfg config.CompletionConfig, log *logging.Logger) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: completionTimeout},
		log:    log.Component("llm"),
	}
}

// Complete sends the transcript and function declarations to the endpoint
// and returns the first choice's message, normalized.
func (c *HTTPClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if c.cfg.Endpoint == "" || c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(c.buildRequestBody(req))
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{
			Provider: "completion",
			Message:  strings.TrimSpace(string(respBody)),
			Code:     resp.StatusCode,
		}
	}

	var wire wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(wire.Choices) == 0 {
		return nil, &ProviderError{Provider: "completion", Message: "response has no choices"}
	}

	out := normalizeWireMessage(wire.Choices[0].Message)

	c.log.Debug().
		Str("model", wire.Model).
		Int("promptTokens", wire.Usage.PromptTokens).
		Int("completionTokens", wire.Usage.CompletionTokens).
		Int("toolCalls", len(out.ToolCalls)).
		Dur("duration", time.Since(start)).
		Msg("completion round trip")

	return &CompletionResponse{
		Message: out,
		Usage:   wire.Usage,
		Model:   wire.Model,
	}, nil
}

func (c *HTTPClient) buildRequestBody(req CompletionRequest) map[string]any {
	temperature := c.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	topP := c.cfg.TopP
	if req.TopP != nil {
		topP = *req.TopP
	}
	maxTokens := c.cfg.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": temperature,
		"top_p":       topP,
		"max_tokens":  maxTokens,
		"messages":    req.Messages,
	}
	if len(req.Functions) > 0 {
		body["functions"] = req.Functions
	}
	return body
}

// normalizeWireMessage turns one untrusted wire message into a well-typed
// ChatMessage: tool calls extracted through the normalizer, role coerced to
// assistant when missing or unrecognized, content coerced to a string.
func normalizeWireMessage(msg wireMessage) domain.ChatMessage {
	raw := toolcall.RawMessage{
		ID:      msg.ID,
		Role:    msg.Role,
		Content: coerceContent(msg.Content),
	}
	for _, tc := range msg.ToolCalls {
		raw.ToolCalls = append(raw.ToolCalls, toolcall.RawToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	if msg.FunctionCall != nil {
		raw.FunctionCall = &toolcall.RawFunctionCall{
			Name:      msg.FunctionCall.Name,
			Arguments: msg.FunctionCall.Arguments,
		}
	}

	content, calls := toolcall.Normalize(raw)

	out := domain.ChatMessage{
		Role:    coerceRole(msg.Role),
		Content: content,
	}
	for _, call := range calls {
		out.ToolCalls = append(out.ToolCalls, domain.ToolCall{
			ID:   call.ID,
			Type: "function",
			Function: domain.FunctionCall{
				Name:      call.Name,
				Arguments: call.ArgumentsJSON,
			},
		})
	}
	return out
}

func coerceRole(role string) string {
	switch role {
	case domain.RoleSystem, domain.RoleUser, domain.RoleAssistant, domain.RoleTool:
		return role
	default:
		return domain.RoleAssistant
	}
}

// coerceContent renders the untyped content field as a string. Non-string
// JSON values keep their encoded text representation.
func coerceContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var null any
	if err := json.Unmarshal(raw, &null); err == nil && null == nil {
		return ""
	}
	return string(raw)
}

// Wire structures. Every field is optional and untrusted.

type wireResponse struct {
	Model   string       `json:"model"`
	Choices []wireChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

type wireChoice struct {
	Message wireMessage `json:"message"`
}

type wireMessage struct {
	ID           string            `json:"id"`
	Role         string            `json:"role"`
	Content      json.RawMessage   `json:"content"`
	ToolCalls    []wireToolCall    `json:"tool_calls"`
	FunctionCall *wireFunctionCall `json:"function_call"`
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Function wireFunctionCall `json:"function"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

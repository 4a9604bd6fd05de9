// Package llm talks to the external chat-completion endpoint.
//
// The wire contract is the common chat-completions shape shared by most
// providers: one message per choice, optional tool/function calls, bearer
// auth. The client owns the timeout; retries belong to the orchestrator.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellspring-ai/wellspring/internal/domain"
)

// ErrNotConfigured is returned before any network call when the endpoint URL
// or credential is missing.
var ErrNotConfigured = errors.New("completion endpoint not configured")

// ProviderError is returned when the endpoint responds with a non-2xx status.
type ProviderError struct {
	Provider string
	Message  string
	Code     int
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// CompletionRequest is the input to a Complete call. Zero-valued sampling
// fields fall back to the client's configured defaults.
type CompletionRequest struct {
	Messages    []domain.ChatMessage
	Functions   []domain.FunctionDeclaration
	Temperature *float64
	TopP        *float64
	MaxTokens   int
}

// Usage tracks token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is one normalized assistant turn. Message.ToolCalls is
// nil, never an empty slice, when the model requested no functions.
type CompletionResponse struct {
	Message domain.ChatMessage
	Usage   Usage
	Model   string
}

// Client is the completion transport the orchestrator depends on.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

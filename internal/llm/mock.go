package llm

import (
	"context"

	"github.com/wellspring-ai/wellspring/internal/domain"
)

// MockClient is a test double for Client. Calls counts Complete invocations.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Calls        int
}

func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.Calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &CompletionResponse{
		Message: domain.ChatMessage{Role: domain.RoleAssistant, Content: "mock response"},
	}, nil
}

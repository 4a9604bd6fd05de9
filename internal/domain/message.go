// Package domain holds the conversation records shared across the engine.
package domain

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage is one transcript entry. The JSON tags are the wire shape sent
// to the completion endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// Name is the function a tool-result message answers for (role=tool only).
	Name string `json:"name,omitempty"`

	// ToolCallID correlates a tool-result message to the invocation that
	// produced it (role=tool only).
	ToolCallID string `json:"tool_call_id,omitempty"`

	// ToolCalls is nil when the message carries none. The distinction between
	// nil and an empty slice matters downstream: nil means "no tool call".
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// HasToolCalls reports whether the message requests any function invocations.
func (m ChatMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ToolCall is a model-issued request to invoke a named function.
type ToolCall struct {
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the function and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FunctionDeclaration describes one invokable capability as advertised to the
// model. Parameters is a JSON-schema-shaped object.
type FunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

package domain

import "time"

// RetainedMessageWindow is the maximum number of transcript messages a
// conversation state keeps across requests. Older messages are dropped on
// save, never summarized here.
const RetainedMessageWindow = 30

// ConversationState is the per-user aggregate persisted between requests.
type ConversationState struct {
	UserID    string        `json:"userId"`
	Summary   string        `json:"summary,omitempty"`
	Topics    []string      `json:"topics,omitempty"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewConversationState returns the empty default state for a user.
func NewConversationState(userID string) ConversationState {
	return ConversationState{UserID: userID}
}

// AddTopic records a topic if not already present. Insertion order is kept
// but carries no meaning.
func (s *ConversationState) AddTopic(topic string) {
	for _, t := range s.Topics {
		if t == topic {
			return
		}
	}
	s.Topics = append(s.Topics, topic)
}

// TrimMessages drops all but the most recent RetainedMessageWindow messages.
func (s *ConversationState) TrimMessages() {
	if len(s.Messages) > RetainedMessageWindow {
		s.Messages = s.Messages[len(s.Messages)-RetainedMessageWindow:]
	}
}

// Package convostate persists per-user conversation state between requests.
package convostate

import (
	"context"
	"sync"
	"time"

	"github.com/wellspring-ai/wellspring/internal/domain"
)

// Store is the conversation state collaborator. Get returns the empty
// default state for unknown users and never fails for a missing record.
// Put is an idempotent upsert: it trims the retained message window and
// stamps the update time before persisting.
type Store interface {
	Get(ctx context.Context, userID string) (domain.ConversationState, error)
	Put(ctx context.Context, state domain.ConversationState) error
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]domain.ConversationState
}

// NewMemoryStore creates an in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]domain.ConversationState)}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[userID]; ok {
		return state, nil
	}
	return domain.NewConversationState(userID), nil
}

func (s *MemoryStore) Put(ctx context.Context, state domain.ConversationState) error {
	state.TrimMessages()
	state.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy the slices so later caller mutations don't leak into the store.
	state.Messages = append([]domain.ChatMessage(nil), state.Messages...)
	state.Topics = append([]string(nil), state.Topics...)
	s.states[state.UserID] = state
	return nil
}

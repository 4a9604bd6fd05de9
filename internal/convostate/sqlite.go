package convostate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/store"
)

// SQLiteStore implements Store backed by the shared SQLite database. One row
// per user; the whole state is written in a single atomic upsert.
type SQLiteStore struct {
	db *store.DB
}

// NewSQLiteStore creates a conversation store using the given database.
func NewSQLiteStore(db *store.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	state := domain.NewConversationState(userID)

	var summary, topicsJSON, messagesJSON, updatedAt string
	err := s.db.SQL().QueryRowContext(ctx,
		`SELECT summary, topics, messages, updated_at FROM conversations WHERE user_id = ?`,
		userID,
	).Scan(&summary, &topicsJSON, &messagesJSON, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("loading conversation for %s: %w", userID, err)
	}

	state.Summary = summary
	if err := json.Unmarshal([]byte(topicsJSON), &state.Topics); err != nil {
		state.Topics = nil
	}
	if err := json.Unmarshal([]byte(messagesJSON), &state.Messages); err != nil {
		state.Messages = nil
	}
	state.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return state, nil
}

func (s *SQLiteStore) Put(ctx context.Context, state domain.ConversationState) error {
	state.TrimMessages()
	state.UpdatedAt = time.Now()

	topicsJSON, err := json.Marshal(state.Topics)
	if err != nil {
		return fmt.Errorf("encoding topics: %w", err)
	}
	messagesJSON, err := json.Marshal(state.Messages)
	if err != nil {
		return fmt.Errorf("encoding messages: %w", err)
	}

	_, err = s.db.SQL().ExecContext(ctx,
		`INSERT INTO conversations (user_id, summary, topics, messages, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			summary = excluded.summary,
			topics = excluded.topics,
			messages = excluded.messages,
			updated_at = excluded.updated_at`,
		state.UserID, state.Summary, string(topicsJSON), string(messagesJSON),
		state.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving conversation for %s: %w", state.UserID, err)
	}
	return nil
}

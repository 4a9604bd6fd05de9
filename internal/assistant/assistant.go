// Package assistant drives the multi-turn, tool-calling conversation loop.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/wellspring-ai/wellspring/internal/capability"
	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/convostate"
	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/llm"
	"github.com/wellspring-ai/wellspring/internal/logging"
)

// ChatRequest is one incoming user message.
type ChatRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
	Message  string `json:"message"`
}

// ChatResult is the assistant's answer to one request.
type ChatResult struct {
	Reply    string        `json:"reply"`
	Model    string        `json:"model,omitempty"`
	Usage    llm.Usage     `json:"usage"`
	Duration time.Duration `json:"duration"`
}

// Assistant ties the completion client, capability registry and conversation
// store together. One Chat call is one independent invocation; the only
// cross-request state lives in the store.
type Assistant struct {
	cfg        config.AssistantConfig
	client     llm.Client
	states     convostate.Store
	registry   *capability.Registry
	dispatcher *capability.Dispatcher
	log        *logging.Logger
}

// New creates an assistant. A nil registry disables tool calling entirely:
// the first model response is returned as-is.
func New(
	cfg config.AssistantConfig,
	client llm.Client,
	states convostate.Store,
	registry *capability.Registry,
	log *logging.Logger,
) *Assistant {
	a := &Assistant{
		cfg:      cfg,
		client:   client,
		states:   states,
		registry: registry,
		log:      log.Component("assistant"),
	}
	if registry != nil {
		a.dispatcher = capability.NewDispatcher(registry, log)
	}
	return a
}

// Chat processes one user message to a terminal natural-language answer and
// persists the extended conversation.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	start := time.Now()

	state, err := a.states.Get(ctx, req.UserID)
	if err != nil {
		a.log.Warn().Str("user", req.UserID).Err(err).Msg("loading conversation state, starting fresh")
		state = domain.NewConversationState(req.UserID)
	}

	prefix := a.transcriptPrefix(req.UserName)
	base := make([]domain.ChatMessage, 0, len(prefix)+len(state.Messages)+1)
	base = append(base, prefix...)
	base = append(base, state.Messages...)
	base = append(base, domain.ChatMessage{Role: domain.RoleUser, Content: req.Message})

	a.log.Info().
		Str("user", req.UserID).
		Int("historyLen", len(state.Messages)).
		Msg("processing message")

	out, err := a.run(ctx, base, capability.Invocation{UserID: req.UserID, UserName: req.UserName})
	if err != nil {
		return nil, err
	}

	// Persist everything after the system/few-shot prefix: prior history,
	// the new user message, and every turn the loop appended.
	state.Messages = out.transcript[len(prefix):]
	for _, topic := range extractTopics(req.Message) {
		state.AddTopic(topic)
	}
	if err := a.states.Put(ctx, state); err != nil {
		a.log.Error().Str("user", req.UserID).Err(err).Msg("persisting conversation state")
	}

	a.log.Info().
		Str("user", req.UserID).
		Str("model", out.model).
		Int("promptTokens", out.usage.PromptTokens).
		Int("completionTokens", out.usage.CompletionTokens).
		Dur("duration", time.Since(start)).
		Msg("reply generated")

	return &ChatResult{
		Reply:    out.message.Content,
		Model:    out.model,
		Usage:    out.usage,
		Duration: time.Since(start),
	}, nil
}

// topicLexicon maps message keywords to conversation topics.
var topicLexicon = map[string]string{
	"weight":    "weight",
	"bmi":       "weight",
	"sleep":     "sleep",
	"steps":     "activity",
	"walk":      "activity",
	"run":       "activity",
	"meal":      "meals",
	"meals":     "meals",
	"breakfast": "meals",
	"lunch":     "meals",
	"dinner":    "meals",
	"recipe":    "recipes",
	"recipes":   "recipes",
	"calories":  "nutrition",
	"protein":   "nutrition",
	"nutrition": "nutrition",
	"goal":      "goals",
	"goals":     "goals",
}

func extractTopics(message string) []string {
	var topics []string
	seen := map[string]bool{}
	for _, word := range strings.Fields(strings.ToLower(message)) {
		word = strings.Trim(word, ".,!?'\"")
		if topic, ok := topicLexicon[word]; ok && !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	return topics
}

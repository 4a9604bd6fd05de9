package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/wellspring-ai/wellspring/internal/domain"
)

// defaultPersona is used when the config supplies no persona text. The
// persona is otherwise consumed as an opaque string.
const defaultPersona = "You are Wellspring, a supportive wellness assistant. " +
	"Answer questions about the user's health data, goals, meals and recipes " +
	"using the available functions, and ground every answer in their results. " +
	"If you don't have the data, say so rather than guessing."

// buildSystemPrompt constructs the system message for one request.
func buildSystemPrompt(persona, userName string) string {
	if persona == "" {
		persona = defaultPersona
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Current date: %s\n", time.Now().Format("2006-01-02")))
	if userName != "" {
		b.WriteString(fmt.Sprintf("User: %s\n", userName))
	}
	return b.String()
}

// fewShotExamples are fixed example turns that anchor the answer style.
var fewShotExamples = []domain.ChatMessage{
	{
		Role:    domain.RoleUser,
		Content: "How active was I this week?",
	},
	{
		Role: domain.RoleAssistant,
		Content: "You logged activity on 5 of the last 7 days, averaging 8,400 steps a day. " +
			"Tuesday was your biggest day at 12,100 steps. Keep that streak going!",
	},
}

// transcriptPrefix is the system prompt plus few-shot examples that precede
// the persisted history in every request transcript.
func (a *Assistant) transcriptPrefix(userName string) []domain.ChatMessage {
	prefix := make([]domain.ChatMessage, 0, 1+len(fewShotExamples))
	prefix = append(prefix, domain.ChatMessage{
		Role:    domain.RoleSystem,
		Content: buildSystemPrompt(a.cfg.Persona, userName),
	})
	prefix = append(prefix, fewShotExamples...)
	return prefix
}

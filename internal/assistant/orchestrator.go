package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wellspring-ai/wellspring/internal/capability"
	"github.com/wellspring-ai/wellspring/internal/domain"
	"github.com/wellspring-ai/wellspring/internal/llm"
)

// ErrMaxToolDepth is raised when the model keeps requesting functions
// without converging on an answer.
var ErrMaxToolDepth = errors.New("exceeded maximum tool depth")

// retryBaseDelay scales the backoff between attempts: the wait before
// attempt n+1 is retryBaseDelay × (n+1).
const retryBaseDelay = 500 * time.Millisecond

// loopOutcome is the terminal answer of one successful loop run.
type loopOutcome struct {
	message    domain.ChatMessage
	usage      llm.Usage
	model      string
	transcript []domain.ChatMessage
}

// run drives the attempt loop. Each attempt restarts the depth loop from
// the original transcript, so a retried conversation never duplicates
// messages. Configuration errors are not retryable and fail immediately.
func (a *Assistant) run(ctx context.Context, base []domain.ChatMessage, inv capability.Invocation) (*loopOutcome, error) {
	var lastErr error
	for attempt := 0; attempt < a.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(attempt)
			a.log.Warn().
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Err(lastErr).
				Msg("retrying conversation loop")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		out, err := a.runDepthLoop(ctx, base, inv)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("conversation failed after %d attempts: %w", a.cfg.MaxAttempts, lastErr)
}

// runDepthLoop performs bounded completion/tool-execution cycles over a
// working copy of the transcript.
func (a *Assistant) runDepthLoop(ctx context.Context, base []domain.ChatMessage, inv capability.Invocation) (*loopOutcome, error) {
	work := append([]domain.ChatMessage(nil), base...)

	var functions []domain.FunctionDeclaration
	if a.registry != nil {
		functions = a.registry.Declarations()
	}

	var usage llm.Usage
	var model string

	for depth := 0; depth < a.cfg.MaxToolDepth; depth++ {
		resp, err := a.client.Complete(ctx, llm.CompletionRequest{
			Messages:  work,
			Functions: functions,
		})
		if err != nil {
			return nil, err
		}

		usage.PromptTokens += resp.Usage.PromptTokens
		usage.CompletionTokens += resp.Usage.CompletionTokens
		usage.TotalTokens += resp.Usage.TotalTokens
		if resp.Model != "" {
			model = resp.Model
		}

		work = append(work, resp.Message)

		if !resp.Message.HasToolCalls() || a.dispatcher == nil {
			return &loopOutcome{
				message:    resp.Message,
				usage:      usage,
				model:      model,
				transcript: work,
			}, nil
		}

		a.log.Info().
			Int("depth", depth).
			Int("toolCalls", len(resp.Message.ToolCalls)).
			Msg("executing tool calls")

		work = append(work, a.dispatchAll(ctx, resp.Message.ToolCalls, inv)...)
	}

	return nil, ErrMaxToolDepth
}

// dispatchAll executes the calls of one depth iteration concurrently and
// returns their result messages in request order. The transport attributes
// results by position, so ordering is load-bearing even though execution
// is not.
func (a *Assistant) dispatchAll(ctx context.Context, calls []domain.ToolCall, inv capability.Invocation) []domain.ChatMessage {
	results := make([]domain.ChatMessage, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call domain.ToolCall) {
			defer wg.Done()
			payload := a.dispatcher.Dispatch(ctx, call.Function.Name, call.Function.Arguments, inv)
			results[i] = domain.ChatMessage{
				Role:       domain.RoleTool,
				Content:    string(payload),
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			}
		}(i, call)
	}
	wg.Wait()

	return results
}

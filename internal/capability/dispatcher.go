package capability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wellspring-ai/wellspring/internal/logging"
)

// Dispatcher executes normalized tool calls against a Registry. A failing
// capability never aborts the conversation turn; every failure becomes a
// structured error payload the model can read and explain.
type Dispatcher struct {
	registry *Registry
	log      *logging.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, log *logging.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log.Component("dispatch")}
}

// Dispatch invokes one capability and returns its JSON-serialized result.
// The returned bytes are always valid JSON: handler errors, panics, unknown
// names, and unserializable results all produce an error payload.
func (d *Dispatcher) Dispatch(ctx context.Context, name, argsJSON string, inv Invocation) json.RawMessage {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil || args == nil {
		args = map[string]any{}
	}

	handler, ok := d.registry.Lookup(name)
	if !ok {
		d.log.Warn().Str("function", name).Msg("unknown function requested")
		return errorPayload(fmt.Sprintf("unknown function: %s", name))
	}

	result, err := d.invoke(ctx, handler, args, inv)
	if err != nil {
		d.log.Warn().Str("function", name).Err(err).Msg("capability failed")
		return errorPayload(err.Error())
	}

	data, err := json.Marshal(result)
	if err != nil {
		d.log.Warn().Str("function", name).Err(err).Msg("unserializable capability result")
		return errorPayload("result not serializable")
	}
	return data
}

// invoke runs the handler with panic isolation.
func (d *Dispatcher) invoke(ctx context.Context, h Handler, args map[string]any, inv Invocation) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capability panicked: %v", r)
		}
	}()
	return h(ctx, args, inv)
}

func errorPayload(message string) json.RawMessage {
	data, err := json.Marshal(map[string]string{
		"status":  "error",
		"message": message,
	})
	if err != nil {
		return json.RawMessage(`{"status":"error","message":"internal error"}`)
	}
	return data
}

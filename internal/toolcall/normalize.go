// Package toolcall extracts normalized function-invocation requests from raw
// assistant messages, regardless of which wire encoding the model used.
//
// Two encodings are supported: the structured tool_calls field emitted by
// conformant chat-completion models, and an in-band channel-marker markup
// that some open-weight models embed directly in the message text:
//
//	<|channel|>commentary to=functions.get_weight <|constrain|>json<|message|>{...}<|call|>
//
// Normalization is pure parsing. It performs no I/O and cannot fail; every
// fallback degrades to an empty argument object.
package toolcall

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Request is one normalized function invocation. ArgumentsJSON is always
// syntactically valid JSON text, "{}" when the source could not be parsed.
type Request struct {
	ID            string
	Name          string
	ArgumentsJSON string
}

// RawToolCall is one entry of the structured tool_calls field.
type RawToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// RawFunctionCall is the single-call legacy field some providers still emit.
type RawFunctionCall struct {
	Name      string
	Arguments string
}

// RawMessage is the assistant message as decoded from the wire, before
// normalization. Every field is untrusted.
type RawMessage struct {
	ID           string
	Role         string
	Content      string
	ToolCalls    []RawToolCall
	FunctionCall *RawFunctionCall
}

// markerRe matches the prefix of one in-band call: channel tag, target
// function, and the json constraint up to the message tag. The payload that
// follows is consumed with a JSON decoder rather than a regex so nested
// objects terminate correctly.
var markerRe = regexp.MustCompile(
	`<\|channel\|>[^<]*\bto=functions\.([A-Za-z0-9_.\-]+)\s*<\|constrain\|>\s*json\s*<\|message\|>`)

const callTerminator = "<|call|>"

// Normalize extracts zero or more requests from a raw assistant message and
// returns the message content with all call markup removed.
//
// The in-band encoding takes precedence: when any channel marker is present
// the structured fields are ignored. Only the in-band path runs alias
// resolution; structured calls come from conformant models and pass through
// verbatim (modulo argument-JSON validation).
func Normalize(raw RawMessage) (content string, calls []Request) {
	content, calls = extractInBand(raw.Content)
	if len(calls) > 0 {
		return content, calls
	}

	if len(raw.ToolCalls) > 0 {
		calls = make([]Request, 0, len(raw.ToolCalls))
		for _, tc := range raw.ToolCalls {
			calls = append(calls, Request{
				ID:            orSynthesized(tc.ID),
				Name:          tc.Name,
				ArgumentsJSON: validJSONObject(tc.Arguments),
			})
		}
		return content, calls
	}

	if raw.FunctionCall != nil && raw.FunctionCall.Name != "" {
		return content, []Request{{
			ID:            orSynthesized(raw.ID),
			Name:          raw.FunctionCall.Name,
			ArgumentsJSON: validJSONObject(raw.FunctionCall.Arguments),
		}}
	}

	return content, nil
}

// extractInBand finds every channel-marker call in the text, strips the
// matched spans, and resolves each through the alias table.
func extractInBand(text string) (string, []Request) {
	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text, nil
	}

	var out strings.Builder
	var calls []Request
	cursor := 0

	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start < cursor {
			// Marker inside a previously consumed payload.
			continue
		}
		name := text[loc[2]:loc[3]]
		out.WriteString(text[cursor:start])

		args, consumed := decodePayload(text[end:])
		stop := end + consumed

		// Swallow an optional call terminator after the payload.
		rest := text[stop:]
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		if strings.HasPrefix(trimmed, callTerminator) {
			stop += len(rest) - len(trimmed) + len(callTerminator)
		}

		calls = append(calls, resolveAlias(name, args))
		cursor = stop
	}
	out.WriteString(text[cursor:])

	return out.String(), calls
}

// decodePayload reads one JSON object from the start of s and reports how
// many bytes it consumed. Anything that is not an object degrades to "{}"
// with zero consumption, so only the marker prefix gets stripped.
func decodePayload(s string) (json.RawMessage, int) {
	dec := json.NewDecoder(strings.NewReader(s))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return json.RawMessage("{}"), 0
	}
	if len(raw) == 0 || raw[0] != '{' {
		return json.RawMessage("{}"), 0
	}
	return raw, int(dec.InputOffset())
}

// validJSONObject returns s when it parses as a JSON object, "{}" otherwise.
func validJSONObject(s string) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return "{}"
	}
	return s
}

func orSynthesized(id string) string {
	if id != "" {
		return id
	}
	return "call_" + uuid.NewString()
}

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"key":"value"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Debug().Msg("debug line")
	log.Info().Msg("info line")
	log.Warn().Msg("warn line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
}

func TestComponentTag(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Component("assistant").Info().Msg("tagged")

	assert.Contains(t, buf.String(), `"component":"assistant"`)
}

func TestSilentDiscards(t *testing.T) {
	log := Silent()
	// Must not panic and must not write anywhere observable.
	log.Error().Msg("dropped")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "bogus", "json")

	log.Debug().Msg("debug line")
	log.Info().Msg("info line")

	lines := strings.TrimSpace(buf.String())
	assert.NotContains(t, lines, "debug line")
	assert.Contains(t, lines, "info line")
}

package cli

import (
	"fmt"

	"github.com/wellspring-ai/wellspring/internal/assistant"
	"github.com/wellspring-ai/wellspring/internal/capability"
	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/convostate"
	"github.com/wellspring-ai/wellspring/internal/llm"
	"github.com/wellspring-ai/wellspring/internal/store"
	"github.com/wellspring-ai/wellspring/internal/wellness"
)

// buildAssistant wires the full stack from config. The returned DB must be
// closed by the caller.
func buildAssistant(cfg config.Config) (*assistant.Assistant, *store.DB, error) {
	dbPath := config.ResolveDBPath(cfg)
	db, err := store.Open(dbPath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	log.Info().Str("path", dbPath).Msg("database ready")

	registry := capability.NewRegistry()
	wellness.NewService(db, log).RegisterCapabilities(registry)

	a := assistant.New(
		cfg.Assistant,
		llm.NewHTTPClient(cfg.Completion, log),
		convostate.NewSQLiteStore(db),
		registry,
		log,
	)
	return a, db, nil
}

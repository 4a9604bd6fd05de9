// Package config loads and validates the wellspring configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Config is the full application configuration.
type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Assistant  AssistantConfig  `yaml:"assistant"`
	Store      StoreConfig      `yaml:"store"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CompletionConfig configures the chat-completion endpoint.
type CompletionConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"topP"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// AssistantConfig bounds the orchestration loop and shapes the persona.
type AssistantConfig struct {
	MaxToolDepth int    `yaml:"maxToolDepth"`
	MaxAttempts  int    `yaml:"maxAttempts"`
	Persona      string `yaml:"persona"`
}

// StoreConfig selects the conversation/wellness database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// GatewayConfig configures the HTTP entry point.
type GatewayConfig struct {
	Port  int    `yaml:"port"`
	Bind  string `yaml:"bind"`
	Token string `yaml:"token"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Style string `yaml:"style"`
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Completion: CompletionConfig{
			Temperature: 0.7,
			TopP:        1.0,
			MaxTokens:   1024,
		},
		Assistant: AssistantConfig{
			MaxToolDepth: 5,
			MaxAttempts:  2,
		},
		Gateway: GatewayConfig{
			Port: 8740,
			Bind: "loopback",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
	}
}

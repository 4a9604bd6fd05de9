package config

import "fmt"

// Validate checks the config for values that would fail at runtime.
// It returns all problems found, not just the first.
func Validate(cfg Config) []error {
	var errs []error

	if cfg.Completion.Temperature < 0 || cfg.Completion.Temperature > 2 {
		errs = append(errs, &ConfigError{Message: fmt.Sprintf(
			"completion.temperature %v out of range [0, 2]", cfg.Completion.Temperature)})
	}
	if cfg.Completion.TopP <= 0 || cfg.Completion.TopP > 1 {
		errs = append(errs, &ConfigError{Message: fmt.Sprintf(
			"completion.topP %v out of range (0, 1]", cfg.Completion.TopP)})
	}
	if cfg.Completion.MaxTokens < 1 {
		errs = append(errs, &ConfigError{Message: "completion.maxTokens must be positive"})
	}
	if cfg.Assistant.MaxToolDepth < 1 {
		errs = append(errs, &ConfigError{Message: "assistant.maxToolDepth must be positive"})
	}
	if cfg.Assistant.MaxAttempts < 1 {
		errs = append(errs, &ConfigError{Message: "assistant.maxAttempts must be positive"})
	}
	if cfg.Gateway.Port < 1 || cfg.Gateway.Port > 65535 {
		errs = append(errs, &ConfigError{Message: fmt.Sprintf(
			"gateway.port %d out of range", cfg.Gateway.Port)})
	}
	switch cfg.Gateway.Bind {
	case "loopback", "all":
	default:
		errs = append(errs, &ConfigError{Message: fmt.Sprintf(
			"gateway.bind %q must be \"loopback\" or \"all\"", cfg.Gateway.Bind)})
	}

	return errs
}

package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so keys and tokens can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Completion.APIKey = expandEnvVars(cfg.Completion.APIKey)
	cfg.Gateway.Token = expandEnvVars(cfg.Gateway.Token)
}

// applyEnvOverrides lets a handful of environment variables override the
// file, which keeps container deployments configless.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WELLSPRING_COMPLETION_ENDPOINT"); v != "" {
		cfg.Completion.Endpoint = v
	}
	if v := os.Getenv("WELLSPRING_API_KEY"); v != "" {
		cfg.Completion.APIKey = v
	}
	if v := os.Getenv("WELLSPRING_MODEL"); v != "" {
		cfg.Completion.Model = v
	}
	if v := os.Getenv("WELLSPRING_GATEWAY_TOKEN"); v != "" {
		cfg.Gateway.Token = v
	}
	if v := os.Getenv("WELLSPRING_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// applyDefaults backfills zero values after YAML unmarshal so a sparse file
// still yields a usable config.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Completion.Temperature == 0 {
		cfg.Completion.Temperature = def.Completion.Temperature
	}
	if cfg.Completion.TopP == 0 {
		cfg.Completion.TopP = def.Completion.TopP
	}
	if cfg.Completion.MaxTokens == 0 {
		cfg.Completion.MaxTokens = def.Completion.MaxTokens
	}
	if cfg.Assistant.MaxToolDepth == 0 {
		cfg.Assistant.MaxToolDepth = def.Assistant.MaxToolDepth
	}
	if cfg.Assistant.MaxAttempts == 0 {
		cfg.Assistant.MaxAttempts = def.Assistant.MaxAttempts
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = def.Gateway.Port
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = def.Gateway.Bind
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = def.Logging.Style
	}
}

// Load reads the config file, applies environment overrides, and returns a
// merged Config. A missing file produces defaults plus env overrides only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and
// IDEAFORGE_* environment overrides, and validates the result.
// An empty path yields the default configuration (plus env overrides),
// so the service runs without a config file.
//
// The loading sequence is:
//  1. Parse YAML from file (if a path is given)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	} else {
		cfg.Telemetry.Metrics.Enabled = true
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Variables
// use the format IDEAFORGE_SECTION_FIELD and always take precedence over
// file values.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("IDEAFORGE_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("IDEAFORGE_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("IDEAFORGE_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("IDEAFORGE_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	if val := os.Getenv("IDEAFORGE_GATEWAY_BASE_URL"); val != "" {
		cfg.Gateway.BaseURL = val
	}
	if val := os.Getenv("IDEAFORGE_GATEWAY_MODEL"); val != "" {
		cfg.Gateway.Model = val
	}
	if val := os.Getenv("IDEAFORGE_GATEWAY_API_KEY_ENV"); val != "" {
		cfg.Gateway.APIKeyEnv = val
	}
	if val := os.Getenv("IDEAFORGE_GATEWAY_MAX_COMPLETION_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Gateway.MaxCompletionTokens = i
		}
	}
	if val := os.Getenv("IDEAFORGE_GATEWAY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.Timeout = d
		}
	}

	if val := os.Getenv("IDEAFORGE_RATELIMIT_MAX_REQUESTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.MaxRequests = i
		}
	}
	if val := os.Getenv("IDEAFORGE_RATELIMIT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Window = d
		}
	}
	if val := os.Getenv("IDEAFORGE_RATELIMIT_SWEEP_SCHEDULE"); val != "" {
		cfg.RateLimit.SweepSchedule = val
	}

	if val := os.Getenv("IDEAFORGE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("IDEAFORGE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("IDEAFORGE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("IDEAFORGE_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}

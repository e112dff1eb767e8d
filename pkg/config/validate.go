package config

import "fmt"

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration for values that cannot work at
// runtime. It assumes defaults have already been applied.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address must not be empty")
	}
	if cfg.Server.WriteTimeout <= cfg.Gateway.Timeout {
		return fmt.Errorf("server.write_timeout (%s) must exceed gateway.timeout (%s)",
			cfg.Server.WriteTimeout, cfg.Gateway.Timeout)
	}

	if cfg.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url must not be empty")
	}
	if cfg.Gateway.Model == "" {
		return fmt.Errorf("gateway.model must not be empty")
	}
	if cfg.Gateway.MaxCompletionTokens <= 0 {
		return fmt.Errorf("gateway.max_completion_tokens must be positive")
	}

	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		return fmt.Errorf("telemetry.logging.level %q is not one of debug, info, warn, error",
			cfg.Telemetry.Logging.Level)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		return fmt.Errorf("telemetry.logging.format %q is not one of json, text",
			cfg.Telemetry.Logging.Format)
	}

	return nil
}

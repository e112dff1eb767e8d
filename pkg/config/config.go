package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	// Server contains the HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Gateway contains the upstream chat-completion client settings
	Gateway GatewayConfig `yaml:"gateway"`

	// RateLimit contains the per-caller limiter settings
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Telemetry contains logging and metrics settings
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the address:port to bind (e.g., ":8080")
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// It must exceed the gateway timeout or long generations get cut off.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GatewayConfig contains the upstream chat-completion client settings.
// The bearer credential itself never lives in the file; only the name of
// the environment variable holding it does.
type GatewayConfig struct {
	// BaseURL is the upstream API root
	BaseURL string `yaml:"base_url"`

	// Model is the model identifier sent with every request
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the bearer token
	APIKeyEnv string `yaml:"api_key_env"`

	// MaxCompletionTokens caps the generated reply length
	MaxCompletionTokens int `yaml:"max_completion_tokens"`

	// Timeout bounds each upstream request
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig contains the per-caller limiter settings.
type RateLimitConfig struct {
	// MaxRequests is the number of requests allowed per caller per window
	MaxRequests int `yaml:"max_requests"`

	// Window is the fixed window duration
	Window time.Duration `yaml:"window"`

	// SweepSchedule is the cron spec for the expired-record sweep
	SweepSchedule string `yaml:"sweep_schedule"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text")
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served
	Enabled bool `yaml:"enabled"`

	// Path is the scrape endpoint path
	Path string `yaml:"path"`
}

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout bounds a single search call. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-researcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig locates the remote search service.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the scheme and host of the service (e.g. "http://localhost:8000").
	// The search path is fixed.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// File is the log destination. Empty writes to stderr.
	File string `json:"file" yaml:"file"`
}

// HistoryConfig controls the local search journal.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics (e.g. ":9090"). Empty disables it.
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all settings for one run of the client.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Log     LogConfig     `json:"log" yaml:"log"`
	History HistoryConfig `json:"history" yaml:"history"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

package types

import "time"

// DefaultBaseURL is the public history provider.
const DefaultBaseURL = "http://history.muffinlabs.com"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "chronologist/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ProviderConfig holds settings for the history provider client.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the provider root; endpoints are resolved against it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// RequestsPerSecond throttles outbound requests. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the token bucket size used with RequestsPerSecond (default 1).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`
}

// ServeConfig holds settings for the HTTP reply surface.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// SummaryLimit caps the number of messages returned when no year is
	// requested (default 3).
	SummaryLimit int `json:"summary_limit" yaml:"summary_limit" mapstructure:"summary_limit"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

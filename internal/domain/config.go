package domain

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
// Values come from an optional YAML file with environment variables layered
// on top, so the server runs with nothing but NASA_API_KEY set.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	NASA      NASAConfig      `yaml:"nasa"`
	Upstreams UpstreamConfig  `yaml:"upstreams"`

	// TimeoutSeconds bounds every upstream call so a slow API cannot hang
	// a request indefinitely.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"MCP_UPSTREAM_TIMEOUT"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type" env:"MCP_TRANSPORT"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host" env:"MCP_HTTP_HOST"`
	Port int    `yaml:"port" env:"MCP_HTTP_PORT"`
}

// NASAConfig holds credentials for api.nasa.gov.
type NASAConfig struct {
	APIKey string `yaml:"api_key" env:"NASA_API_KEY"`
}

// UpstreamConfig holds the base URLs of every upstream service.
// Overridable so tests can point the clients at local fakes.
type UpstreamConfig struct {
	APODBaseURL string `yaml:"apod_base_url" env:"APOD_BASE_URL"`
	MarsBaseURL string `yaml:"mars_base_url" env:"MARS_BASE_URL"`
	NeoBaseURL  string `yaml:"neo_base_url" env:"NEO_BASE_URL"`
	EPICBaseURL string `yaml:"epic_base_url" env:"EPIC_BASE_URL"`
	GIBSBaseURL string `yaml:"gibs_base_url" env:"GIBS_BASE_URL"`
	NWSBaseURL  string `yaml:"nws_base_url" env:"NWS_BASE_URL"`
}

// Default endpoints, matching the public NASA and NWS services.
const (
	DefaultAPODBaseURL = "https://api.nasa.gov/planetary/apod"
	DefaultMarsBaseURL = "https://api.nasa.gov/mars-photos/api/v1/rovers/curiosity/photos"
	DefaultNeoBaseURL  = "https://api.nasa.gov/neo/rest/v1/feed"
	DefaultEPICBaseURL = "https://epic.gsfc.nasa.gov/api"
	DefaultGIBSBaseURL = "https://gibs.earthdata.nasa.gov/wms"
	DefaultNWSBaseURL  = "https://api.weather.gov"

	DefaultTimeoutSeconds = 30
)

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Type: "stdio",
			HTTP: HTTPConfig{Host: "0.0.0.0", Port: 8000},
		},
		NASA: NASAConfig{APIKey: "DEMO_KEY"},
		Upstreams: UpstreamConfig{
			APODBaseURL: DefaultAPODBaseURL,
			MarsBaseURL: DefaultMarsBaseURL,
			NeoBaseURL:  DefaultNeoBaseURL,
			EPICBaseURL: DefaultEPICBaseURL,
			GIBSBaseURL: DefaultGIBSBaseURL,
			NWSBaseURL:  DefaultNWSBaseURL,
		},
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the upstream timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and environment variable overrides, in that order. A missing file is only
// an error when a path was explicitly requested.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
		}
	}

	// Environment variables win over the file.
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.NASA.APIKey == "" {
		errors = append(errors, "nasa api_key is required (set NASA_API_KEY or nasa.api_key)")
	}

	if c.TimeoutSeconds <= 0 {
		errors = append(errors, fmt.Sprintf("invalid timeout_seconds %d: must be positive", c.TimeoutSeconds))
	}

	if err := c.Upstreams.validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type == "" {
		errors = append(errors, "transport type is required")
	} else if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validate checks every upstream base URL.
func (u *UpstreamConfig) validate() error {
	var errors []string

	urls := map[string]string{
		"apod_base_url": u.APODBaseURL,
		"mars_base_url": u.MarsBaseURL,
		"neo_base_url":  u.NeoBaseURL,
		"epic_base_url": u.EPICBaseURL,
		"gibs_base_url": u.GIBSBaseURL,
		"nws_base_url":  u.NWSBaseURL,
	}

	for name, raw := range urls {
		if raw == "" {
			errors = append(errors, fmt.Sprintf("%s is required", name))
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s is invalid: %v", name, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("%s must use http or https scheme", name))
		} else if parsed.Host == "" {
			errors = append(errors, fmt.Sprintf("%s must include a host", name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

package domain

import (
	"os"
	"strings"
	"testing"
)

// TestDefaultConfig verifies the zero-file configuration is valid and
// points at the public services.
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if config.Transport.Type != "stdio" {
		t.Errorf("Transport.Type = %s, want stdio", config.Transport.Type)
	}
	if config.NASA.APIKey != "DEMO_KEY" {
		t.Errorf("NASA.APIKey = %s, want DEMO_KEY", config.NASA.APIKey)
	}
	if config.Upstreams.APODBaseURL != DefaultAPODBaseURL {
		t.Errorf("APODBaseURL = %s, want %s", config.Upstreams.APODBaseURL, DefaultAPODBaseURL)
	}
	if config.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", config.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

// TestLoadConfigFromFile verifies YAML values override the defaults.
func TestLoadConfigFromFile(t *testing.T) {
	configContent := `
transport:
  type: http
  http:
    host: 127.0.0.1
    port: 9000

nasa:
  api_key: test-key

timeout_seconds: 10
`

	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	config, err := LoadConfig(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if config.Transport.Type != "http" {
		t.Errorf("Transport.Type = %s, want http", config.Transport.Type)
	}
	if config.Transport.HTTP.Host != "127.0.0.1" {
		t.Errorf("HTTP.Host = %s, want 127.0.0.1", config.Transport.HTTP.Host)
	}
	if config.Transport.HTTP.Port != 9000 {
		t.Errorf("HTTP.Port = %d, want 9000", config.Transport.HTTP.Port)
	}
	if config.NASA.APIKey != "test-key" {
		t.Errorf("NASA.APIKey = %s, want test-key", config.NASA.APIKey)
	}
	if config.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", config.TimeoutSeconds)
	}
	// Untouched fields keep their defaults.
	if config.Upstreams.NWSBaseURL != DefaultNWSBaseURL {
		t.Errorf("NWSBaseURL = %s, want default", config.Upstreams.NWSBaseURL)
	}
}

// TestLoadConfigEnvOverride verifies environment variables win over the
// file.
func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("NASA_API_KEY", "env-key")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_HTTP_HOST", "localhost")
	t.Setenv("MCP_HTTP_PORT", "8123")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if config.NASA.APIKey != "env-key" {
		t.Errorf("NASA.APIKey = %s, want env-key", config.NASA.APIKey)
	}
	if config.Transport.Type != "http" {
		t.Errorf("Transport.Type = %s, want http", config.Transport.Type)
	}
	if config.Transport.HTTP.Port != 8123 {
		t.Errorf("HTTP.Port = %d, want 8123", config.Transport.HTTP.Port)
	}
}

// TestLoadConfigMissingFile verifies an explicit path must exist.
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want mention of not found", err)
	}
}

// TestConfigValidation verifies validation failures are reported.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid transport type",
			mutate:  func(c *Config) { c.Transport.Type = "carrier-pigeon" },
			wantErr: "invalid transport type",
		},
		{
			name: "http without port",
			mutate: func(c *Config) {
				c.Transport.Type = "http"
				c.Transport.HTTP.Port = 0
			},
			wantErr: "invalid HTTP port",
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.NASA.APIKey = "" },
			wantErr: "api_key is required",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.TimeoutSeconds = 0 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "empty upstream URL",
			mutate:  func(c *Config) { c.Upstreams.NeoBaseURL = "" },
			wantErr: "neo_base_url is required",
		},
		{
			name:    "upstream URL with bad scheme",
			mutate:  func(c *Config) { c.Upstreams.GIBSBaseURL = "ftp://example.com" },
			wantErr: "must use http or https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("DD_API_KEY", "api_123")
	t.Setenv("DD_APP_KEY", "app_456")
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DDEXPORT_CONNECTOR", "DD_ENDPOINT", "DD_HTTP_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		unsetenv(t, key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "datadog", cfg.Connector.Provider)
	assert.Equal(t, "api_123", cfg.Connector.APIKey)
	assert.Equal(t, "app_456", cfg.Connector.AppKey)
	assert.Equal(t, "https://api.datadoghq.com", cfg.Connector.Endpoint)
	assert.Zero(t, cfg.Connector.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("DD_ENDPOINT", "https://api.datadoghq.eu")
	t.Setenv("DD_HTTP_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.datadoghq.eu", cfg.Connector.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Connector.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		missing string
	}{
		{"api key unset", "DD_API_KEY", "DD_API_KEY"},
		{"app key unset", "DD_APP_KEY", "DD_APP_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			setCredentials(t)
			unsetenv(t, tt.unset)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_EmptyCredential(t *testing.T) {
	clearOptional(t)
	setCredentials(t)
	t.Setenv("DD_APP_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Contains(t, err.Error(), "DD_APP_KEY")
}

func TestLoad_BadTimeout(t *testing.T) {
	setCredentials(t)
	clearOptional(t)
	t.Setenv("DD_HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func validConfig() Config {
	return Config{
		Connector: ConnectorConfig{
			Provider: "datadog",
			APIKey:   "api",
			AppKey:   "app",
			Endpoint: "https://api.datadoghq.com",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative endpoint", func(c *Config) { c.Connector.Endpoint = "api.datadoghq.com" }, "DD_ENDPOINT"},
		{"negative timeout", func(c *Config) { c.Connector.Timeout = -time.Second }, "DD_HTTP_TIMEOUT"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"empty provider", func(c *Config) { c.Connector.Provider = "" }, "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Connector.Endpoint = ""
	cfg.Log.Format = "yaml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DD_ENDPOINT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

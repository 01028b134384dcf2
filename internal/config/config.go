package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// ErrConfig wraps every configuration failure.
var ErrConfig = errors.New("config")

// Config holds all ddexport configuration read from the environment.
type Config struct {
	Connector ConnectorConfig
	Log       LogConfig
}

// ConnectorConfig holds log source settings.
type ConnectorConfig struct {
	Provider string        `env:"DDEXPORT_CONNECTOR" envDefault:"datadog"`
	APIKey   string        `env:"DD_API_KEY,required,notEmpty"`
	AppKey   string        `env:"DD_APP_KEY,required,notEmpty"`
	Endpoint string        `env:"DD_ENDPOINT" envDefault:"https://api.datadoghq.com"`
	Timeout  time.Duration `env:"DD_HTTP_TIMEOUT" envDefault:"0s"` // 0 = transport default
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "text" or "json"
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory when one exists.
func Load() (Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that struct tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if c.Connector.Provider == "" {
		errs = append(errs, errors.New("connector provider is empty"))
	}
	if u, err := url.Parse(c.Connector.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("DD_ENDPOINT %q is not an absolute URL", c.Connector.Endpoint))
	}
	if c.Connector.Timeout < 0 {
		errs = append(errs, fmt.Errorf("DD_HTTP_TIMEOUT must not be negative, got %s", c.Connector.Timeout))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return nil
}

// Package config loads price-tracker settings from defaults, an optional YAML
// file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint       = "http://localhost:5000/check-price/"
	DefaultUserAgent      = "Mozilla/5.0"
	DefaultRequestTimeout = 10 * time.Second
	DefaultListen         = ":8080"
	DefaultLogLevel       = "info"
)

type Config struct {
	// Endpoint is the price-checking URL; the product URL is appended as ?product_url=.
	Endpoint       string        `yaml:"endpoint"`
	UserAgent      string        `yaml:"user_agent"`
	// RequestTimeout defaults to the 10s timeout colly's HTTP client already
	// applies, so the default adds no deadline beyond the transport's; 0 keeps colly's.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Listen string `yaml:"listen"`
	// PathPrefix prefixes page link URLs when the web UI is hosted at a subpath; should start with '/'.
	PathPrefix string `yaml:"path_prefix"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives log output; the terminal UI logs nowhere without it.
	File string `yaml:"file"`
}

func Default() Config {
	return Config{
		Endpoint:       DefaultEndpoint,
		UserAgent:      DefaultUserAgent,
		RequestTimeout: DefaultRequestTimeout,
		Listen:         DefaultListen,
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load builds the configuration. path may be empty to skip the YAML file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PRICE_CHECK_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("DEFAULT_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an absolute URL", c.Endpoint)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request_timeout %s: must not be negative", c.RequestTimeout)
	}
	return nil
}

package core

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "https://api.bitflow.dev"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "BitFlow-SDK-Go/1.0.0"

	defaultMaxRetries = 3
)

// Config carries every knob the SDK accepts. MaxRetries counts retries on
// top of the initial attempt; a negative value disables retries outright
// (zero means "unset" during config layering and falls back to the default).
type Config struct {
	APIKey        string        `koanf:"api_key" mapstructure:"api_key"`
	BaseURL       string        `koanf:"base_url" mapstructure:"base_url"`
	Timeout       time.Duration `koanf:"timeout" mapstructure:"timeout"`
	MaxRetries    int           `koanf:"max_retries" mapstructure:"max_retries"`
	WebhookSecret string        `koanf:"webhook_secret" mapstructure:"webhook_secret"`
	UserAgent     string        `koanf:"user_agent" mapstructure:"user_agent"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: defaultMaxRetries,
		UserAgent:  DefaultUserAgent,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("core: api_key is required")
	}
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("core: parse base_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: base_url %q must be absolute", baseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("core: timeout must not be negative")
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace and trailing base-URL
// slashes removed.
func (c Config) Normalized() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.WebhookSecret = strings.TrimSpace(c.WebhookSecret)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	return c
}

const (
	envAPIKey        = "BITFLOW_API_KEY"
	envBaseURL       = "BITFLOW_BASE_URL"
	envTimeout       = "BITFLOW_TIMEOUT"
	envMaxRetries    = "BITFLOW_MAX_RETRIES"
	envWebhookSecret = "BITFLOW_WEBHOOK_SECRET"
)

// EnvRawConfigLoader reads SDK settings from BITFLOW_* environment
// variables, optionally seeding the process environment from .env files
// first. Missing files are skipped; a later file never overrides a variable
// that is already set.
type EnvRawConfigLoader struct {
	EnvFiles []string
	Getenv   func(key string) string
}

func (l EnvRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	for _, file := range l.EnvFiles {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("core: load env file %s: %w", file, err)
		}
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	values := map[string]any{}
	if apiKey := strings.TrimSpace(getenv(envAPIKey)); apiKey != "" {
		values["api_key"] = apiKey
	}
	if baseURL := strings.TrimSpace(getenv(envBaseURL)); baseURL != "" {
		values["base_url"] = baseURL
	}
	if secret := getenv(envWebhookSecret); strings.TrimSpace(secret) != "" {
		values["webhook_secret"] = secret
	}
	if raw := strings.TrimSpace(getenv(envTimeout)); raw != "" {
		timeout, err := parseTimeout(raw)
		if err != nil {
			return nil, err
		}
		values["timeout"] = timeout
	}
	if raw := strings.TrimSpace(getenv(envMaxRetries)); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("core: parse %s: %w", envMaxRetries, err)
		}
		values["max_retries"] = retries
	}
	return values, nil
}

// parseTimeout accepts either a Go duration ("45s") or bare seconds ("45"),
// matching how the hosted SDKs configure their timeout.
func parseTimeout(raw string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("core: %s must not be negative", envTimeout)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("core: parse %s: %w", envTimeout, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("core: %s must not be negative", envTimeout)
	}
	return timeout, nil
}

var _ RawConfigLoader = EnvRawConfigLoader{}

// Package config provides the server configuration loaded from file,
// .env file and environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/cache"
	"github.com/effective-security/masamcp/utils"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "config")

// Environment variables
const (
	EnvMasaAPIKey  = "MASA_API_KEY"
	EnvMasaAPIURL  = "MASA_API_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvEnvironment = "ENVIRONMENT"
	EnvDebug       = "DEBUG"
)

// Environments
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTest        = "test"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Defaults
const (
	DefaultMasaAPIURL             = "https://api.masa.xyz/v1"
	DefaultLogLevel               = "info"
	DefaultTimeoutSeconds         = 30
	DefaultMaxAttempts            = 3
	DefaultBaseDelayMS            = 1000
	DefaultServerName             = "Masa MCP"
	DefaultAddr                   = ":8080"
	DefaultEndpoint               = "/mcp"
	DefaultShutdownTimeoutSeconds = 10
)

// Config of the server
type Config struct {
	// Environment is one of development|production|test
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty" validate:"oneof=development production test"`
	// LogLevel is one of error|warn|info|debug
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"oneof=error warn info debug"`
	// Debug forces debug log level
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	Masa   MasaConfig   `json:"masa" yaml:"masa"`
	Retry  RetryConfig  `json:"retry" yaml:"retry"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// MasaConfig specifies the Masa API access
type MasaConfig struct {
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty" validate:"required"`
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"required,url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
}

// RetryConfig specifies the retry policy of the Masa API client
type RetryConfig struct {
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"gte=0,lte=10"`
	BaseDelayMS int `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"gte=0"`
}

// CacheConfig specifies the cache bounds
type CacheConfig struct {
	MaxSize    int `json:"max_size,omitempty" yaml:"max_size,omitempty" validate:"gte=0"`
	TTLSeconds int `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty" validate:"gte=0"`
	// Regions provides per-region overrides
	Regions map[string]*CacheRegionConfig `json:"regions,omitempty" yaml:"regions,omitempty" validate:"omitempty,dive"`
}

// CacheRegionConfig specifies bounds of a single region
type CacheRegionConfig struct {
	MaxSize    int `json:"max_size,omitempty" yaml:"max_size,omitempty" validate:"gte=0"`
	TTLSeconds int `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty" validate:"gte=0"`
}

// ServerConfig specifies the MCP server
type ServerConfig struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Transport is one of stdio|http
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty" validate:"oneof=stdio http"`
	// Addr is the listen address for http transport
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Endpoint is the URL path for http transport
	Endpoint               string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds,omitempty" yaml:"shutdown_timeout_seconds,omitempty" validate:"gte=0"`
}

var validate = validator.New()

// Load returns the configuration from the optional file,
// the .env file and the environment variables, in the order of precedence.
// Missing dotenv file is not an error.
func Load(file, dotenv string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return nil, errors.WithMessagef(err, "unable to load config %q", file)
		}
	}

	if err := LoadDotEnv(dotenv); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the .env file,
// existing environment variables are not overridden
func LoadDotEnv(file string) error {
	if file == "" {
		file = ".env"
	}
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			logger.KV(xlog.DEBUG, "reason", "no_dotenv", "file", file)
			return nil
		}
		return errors.WithStack(err)
	}
	if err := godotenv.Load(file); err != nil {
		return errors.WithMessagef(err, "unable to load %q", file)
	}
	logger.KV(xlog.DEBUG, "status", "dotenv_loaded", "file", file)
	return nil
}

// ApplyEnv overrides the values from environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvMasaAPIKey)); v != "" {
		c.Masa.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMasaAPIURL)); v != "" {
		c.Masa.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvEnvironment)); v != "" {
		c.Environment = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// SetDefaults populates empty values with defaults
func (c *Config) SetDefaults() {
	c.Environment = values.StringsCoalesce(c.Environment, EnvironmentDevelopment)
	c.LogLevel = values.StringsCoalesce(c.LogLevel, DefaultLogLevel)
	c.Masa.APIKey = strings.TrimSpace(c.Masa.APIKey)
	c.Masa.BaseURL = values.StringsCoalesce(c.Masa.BaseURL, DefaultMasaAPIURL)
	c.Masa.TimeoutSeconds = values.NumbersCoalesce(c.Masa.TimeoutSeconds, DefaultTimeoutSeconds)
	c.Retry.MaxAttempts = values.NumbersCoalesce(c.Retry.MaxAttempts, DefaultMaxAttempts)
	c.Retry.BaseDelayMS = values.NumbersCoalesce(c.Retry.BaseDelayMS, DefaultBaseDelayMS)
	c.Cache.MaxSize = values.NumbersCoalesce(c.Cache.MaxSize, cache.DefaultMaxSize)
	c.Cache.TTLSeconds = values.NumbersCoalesce(c.Cache.TTLSeconds, int(cache.DefaultTTL/time.Second))
	c.Server.Name = values.StringsCoalesce(c.Server.Name, DefaultServerName)
	c.Server.Transport = values.StringsCoalesce(c.Server.Transport, TransportStdio)
	c.Server.Addr = values.StringsCoalesce(c.Server.Addr, DefaultAddr)
	c.Server.Endpoint = values.StringsCoalesce(c.Server.Endpoint, DefaultEndpoint)
	c.Server.ShutdownTimeoutSeconds = values.NumbersCoalesce(c.Server.ShutdownTimeoutSeconds, DefaultShutdownTimeoutSeconds)
}

// Validate returns error if the configuration is invalid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.StructNamespace() == "Config.Masa.APIKey" {
				return errors.Errorf("%s is required", EnvMasaAPIKey)
			}
			return errors.Errorf("invalid configuration: %s failed on %q", fe.Namespace(), fe.Tag())
		}
		return errors.WithMessage(err, "invalid configuration")
	}
	return nil
}

// IsProduction returns true for production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// IsDevelopment returns true for development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// IsTest returns true for test environment
func (c *Config) IsTest() bool {
	return c.Environment == EnvironmentTest
}

// Level returns the log level, Debug forces xlog.DEBUG
func (c *Config) Level() xlog.LogLevel {
	if c.Debug {
		return xlog.DEBUG
	}
	switch c.LogLevel {
	case "error":
		return xlog.ERROR
	case "warn":
		return xlog.WARNING
	case "debug":
		return xlog.DEBUG
	default:
		return xlog.INFO
	}
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Masa.TimeoutSeconds) * time.Second
}

// RetryBaseDelay returns the delay before the first retry
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelayMS) * time.Millisecond
}

// ShutdownTimeout returns the graceful shutdown deadline
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// CacheDefaults returns the options for regions without overrides
func (c *Config) CacheDefaults() cache.Options {
	return cache.Options{
		MaxSize: c.Cache.MaxSize,
		TTL:     time.Duration(c.Cache.TTLSeconds) * time.Second,
	}
}

// CacheRegions returns the per-region overrides
func (c *Config) CacheRegions() map[string]cache.Options {
	res := make(map[string]cache.Options, len(c.Cache.Regions))
	for name, r := range c.Cache.Regions {
		if r == nil {
			continue
		}
		res[name] = cache.Options{
			MaxSize: r.MaxSize,
			TTL:     time.Duration(r.TTLSeconds) * time.Second,
		}
	}
	return res
}

// Masked returns a copy of the configuration with the API key masked
func (c *Config) Masked() *Config {
	m := *c
	m.Masa.APIKey = utils.Mask(c.Masa.APIKey)
	return &m
}

// String returns YAML of the configuration with the API key masked
func (c *Config) String() string {
	return utils.ToYAML(c.Masked())
}

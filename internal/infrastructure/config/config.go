package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	WorkflowAPI WorkflowAPIConfig
	Cache       CacheConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// WorkflowAPIConfig holds the remote workflow API connection settings. The
// token is injected here at construction time and never read ad hoc inside
// business logic.
type WorkflowAPIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// CacheConfig holds the local summary cache settings
type CacheConfig struct {
	Path string // sqlite file path, ":memory:" for ephemeral
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with REELWORKS_ prefix (e.g. REELWORKS_WORKFLOWAPI_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("REELWORKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		WorkflowAPI: WorkflowAPIConfig{
			BaseURL: v.GetString("workflowapi.base_url"),
			Token:   v.GetString("workflowapi.token"),
			Timeout: v.GetDuration("workflowapi.timeout"),
		},
		Cache: CacheConfig{
			Path: v.GetString("cache.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "reelworks-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("workflowapi.base_url", "http://localhost:9000")
	v.SetDefault("workflowapi.timeout", 10*time.Second)

	v.SetDefault("cache.path", "reelworks.db")
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app.port must not be empty")
	}
	if c.WorkflowAPI.BaseURL == "" {
		return fmt.Errorf("workflowapi.base_url must not be empty")
	}
	if c.WorkflowAPI.Timeout <= 0 {
		return fmt.Errorf("workflowapi.timeout must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

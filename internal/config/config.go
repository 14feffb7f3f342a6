package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tripflow configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Client  ClientConfig  `mapstructure:"client"`
	Wizard  WizardConfig  `mapstructure:"wizard"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls the decision-service API server
type ServerConfig struct {
	// Addr is the listen address for `tripflow serve`
	Addr string `mapstructure:"addr"`
	// SearchCacheTTLSeconds is how long location-search responses stay cached
	SearchCacheTTLSeconds int `mapstructure:"search_cache_ttl_seconds"`
	// MaxSearchResults caps the candidate list returned per query
	MaxSearchResults int `mapstructure:"max_search_results"`
}

// ClientConfig controls how the wizard reaches the decision services
type ClientConfig struct {
	// BaseURL is the root URL of the tripflow API server
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds every stage client request. The orchestrator
	// treats a timeout identically to an explicit failure.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// WizardConfig controls the interactive wizard behavior
type WizardConfig struct {
	// DebounceMs is the quiet interval after a keystroke before a location
	// search is dispatched
	DebounceMs int `mapstructure:"debounce_ms"`
	// MinQueryLength is the minimum query length that triggers a search
	MinQueryLength int `mapstructure:"min_query_length"`
	// DefaultDays is the initial trip duration
	DefaultDays int `mapstructure:"default_days"`
}

// SessionConfig controls where trip state is persisted between wizard runs
type SessionConfig struct {
	// StateDir is the directory holding the session-scoped trip state.
	// Empty means {config dir}/state.
	StateDir string `mapstructure:"state_dir"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is where log files are written; empty means stderr (server) or
	// the session state dir (wizard)
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                  ":8400",
			SearchCacheTTLSeconds: 300,
			MaxSearchResults:      7,
		},
		Client: ClientConfig{
			BaseURL:        "http://localhost:8400",
			TimeoutSeconds: 15,
		},
		Wizard: WizardConfig{
			DebounceMs:     400,
			MinQueryLength: 2,
			DefaultDays:    3,
		},
		Session: SessionConfig{
			StateDir: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// Timeout returns the client request timeout as a duration.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Debounce returns the wizard debounce quiet interval as a duration.
func (c *WizardConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SearchCacheTTL returns the server-side search cache TTL as a duration.
func (c *ServerConfig) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}

// ResolveStateDir returns the directory for session-scoped trip state,
// falling back to {config dir}/state when unset.
func (c *SessionConfig) ResolveStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return filepath.Join(ConfigDir(), "state")
}

// SetDefaults registers all default values with viper
func SetDefaults() {
	defaults := Default()

	// Server defaults
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.search_cache_ttl_seconds", defaults.Server.SearchCacheTTLSeconds)
	viper.SetDefault("server.max_search_results", defaults.Server.MaxSearchResults)

	// Client defaults
	viper.SetDefault("client.base_url", defaults.Client.BaseURL)
	viper.SetDefault("client.timeout_seconds", defaults.Client.TimeoutSeconds)

	// Wizard defaults
	viper.SetDefault("wizard.debounce_ms", defaults.Wizard.DebounceMs)
	viper.SetDefault("wizard.min_query_length", defaults.Wizard.MinQueryLength)
	viper.SetDefault("wizard.default_days", defaults.Wizard.DefaultDays)

	// Session defaults
	viper.SetDefault("session.state_dir", defaults.Session.StateDir)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load unmarshals the current viper state into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripflow")
	}
	// Fall back to ~/.config/tripflow
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tripflow"
	}
	return filepath.Join(home, ".config", "tripflow")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vstore/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vstore.json"

	// DefaultPort is the default inspector port.
	DefaultPort = 7070

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultTick is the default interval between demo mutations.
	DefaultTick = "1s"
)

// Config represents the complete vstore.json configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Inspect configures the devtools inspector server.
	Inspect InspectConfig `json:"inspect,omitempty"`

	// Demo configures the demo stores.
	Demo DemoConfig `json:"demo,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// InspectConfig contains inspector server settings.
type InspectConfig struct {
	// Host is the listen host.
	Host string `json:"host,omitempty"`

	// Port is the listen port.
	Port int `json:"port,omitempty"`

	// Metrics serves Prometheus metrics on /metrics.
	Metrics *bool `json:"metrics,omitempty"`

	// Tick is how often the inspect command mutates its demo store,
	// as a Go duration string.
	Tick string `json:"tick,omitempty"`
}

// DemoConfig contains the initial demo data.
type DemoConfig struct {
	// Todos are the initial todo titles.
	Todos []string `json:"todos,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	metrics := true
	return &Config{
		LogLevel: DefaultLogLevel,
		Inspect: InspectConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: &metrics,
			Tick:    DefaultTick,
		},
		Demo: DemoConfig{
			Todos: []string{"Create a store", "Bind a slice", "Watch it re-render"},
		},
	}
}

// Load reads vstore.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config").
				Wrap(err)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Inspect.Host == "" {
		c.Inspect.Host = DefaultHost
	}
	if c.Inspect.Port == 0 {
		c.Inspect.Port = DefaultPort
	}
	if c.Inspect.Metrics == nil {
		metrics := true
		c.Inspect.Metrics = &metrics
	}
	if c.Inspect.Tick == "" {
		c.Inspect.Tick = DefaultTick
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Inspect.Port < 1 || c.Inspect.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port " + strconv.Itoa(c.Inspect.Port) + " is outside 1-65535.")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("E103").
			WithSuggestion(`Set "logLevel" to one of debug, info, warn, error`)
	}
	if _, err := c.TickInterval(); err != nil {
		return errors.New("E101").
			WithDetail(`"inspect.tick" must be a positive Go duration such as "500ms".`).
			Wrap(err)
	}
	return nil
}

// Addr returns the inspector listen address.
func (c *Config) Addr() string {
	return c.Inspect.Host + ":" + strconv.Itoa(c.Inspect.Port)
}

// MetricsEnabled reports whether /metrics is served.
func (c *Config) MetricsEnabled() bool {
	return c.Inspect.Metrics == nil || *c.Inspect.Metrics
}

// TickInterval parses Inspect.Tick.
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Inspect.Tick)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.Newf(errors.CategoryConfig, "tick %s is not positive", d)
	}
	return d, nil
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

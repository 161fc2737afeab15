package wheels

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-loadable configuration for a Backend and its device.
//
//	debug = true
//	log_level = "info"
//	growth = "double"
//	max_vertices = 65536
//	max_indices = 98304
//
//	[watch]
//	enabled = true
//	dir = "assets"
type Config struct {
	Debug       bool        `toml:"debug"`
	LogLevel    string      `toml:"log_level"`
	Growth      string      `toml:"growth"`
	MaxVertices int         `toml:"max_vertices"`
	MaxIndices  int         `toml:"max_indices"`
	Watch       WatchConfig `toml:"watch"`
}

// WatchConfig enables texture hot reload from Dir.
type WatchConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DefaultConfig returns the configuration used when no file is given:
// exact buffer growth, no buffer limits, warn-level logging.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Growth:   GrowthExact.String(),
	}
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("wheels: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("wheels: failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := ParseGrowthPolicy(c.Growth); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("wheels: log_level: %w", err)
	}
	if c.MaxVertices < 0 || c.MaxIndices < 0 {
		return fmt.Errorf("wheels: buffer limits must not be negative: %w", ErrInvalidArgument)
	}
	if c.Watch.Enabled && c.Watch.Dir == "" {
		return fmt.Errorf("wheels: watch.dir is required when watch is enabled: %w", ErrInvalidArgument)
	}
	return nil
}

// BackendOptions returns the Backend options c selects.
func (c Config) BackendOptions() (BackendOptions, error) {
	g, err := ParseGrowthPolicy(c.Growth)
	if err != nil {
		return BackendOptions{}, err
	}
	return BackendOptions{Growth: g, Debug: c.Debug}, nil
}

// DeviceConfig returns the device limits c selects.
func (c Config) DeviceConfig() DeviceConfig {
	return DeviceConfig{MaxVertices: c.MaxVertices, MaxIndices: c.MaxIndices}
}

// Logger returns a logger writing to w at the configured level. Debug mode
// forces debug level.
func (c Config) Logger(w io.Writer) (*log.Logger, error) {
	level := c.LogLevel
	if c.Debug {
		level = "debug"
	}
	return NewLogger(w, level)
}

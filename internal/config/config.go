// Package config holds the two kinds of settings prodbar reads: the app
// configuration loaded by viper from a YAML file and PRODBAR_ environment
// variables, and the user's appearance preferences kept in the key-value
// store next to the selection.
package config

import (
	"fmt"
	"time"

	barerrors "github.com/ytget/prodbar/internal/errors"
)

// Storage backends
const (
	BackendPreferences = "preferences"
	BackendDisk        = "disk"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the app configuration
type Config struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
	Language        string        `yaml:"language" mapstructure:"language"`
	Storage         StorageConfig `yaml:"storage" mapstructure:"storage"`
	Window          WindowConfig  `yaml:"window" mapstructure:"window"`
	Log             LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects where selection and preferences are kept
type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// WindowConfig sizes the bar window around its content
type WindowConfig struct {
	Padding   float32 `yaml:"padding" mapstructure:"padding"`
	MinWidth  float32 `yaml:"min_width" mapstructure:"min_width"`
	MinHeight float32 `yaml:"min_height" mapstructure:"min_height"`
	MaxWidth  float32 `yaml:"max_width" mapstructure:"max_width"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: 3 * time.Second,
		Language:        "system",
		Storage: StorageConfig{
			Backend: BackendPreferences,
		},
		Window: WindowConfig{
			Padding:   12,
			MinWidth:  500,
			MinHeight: 70,
			MaxWidth:  1400,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// Validate checks the values viper cannot check on its own
func (c *Config) Validate() error {
	if c.RefreshInterval < time.Second {
		return barerrors.New(barerrors.ErrConfig,
			fmt.Sprintf("refresh_interval %s is too short", c.RefreshInterval),
			"use 1s or more")
	}

	switch c.Storage.Backend {
	case BackendPreferences, BackendDisk:
	default:
		return barerrors.New(barerrors.ErrConfig,
			fmt.Sprintf("unknown storage backend %q", c.Storage.Backend),
			"use \"preferences\" or \"disk\"")
	}

	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 || c.Window.Padding < 0 {
		return barerrors.New(barerrors.ErrConfig, "window sizes must not be negative", "")
	}
	if c.Window.MaxWidth > 0 && c.Window.MaxWidth < c.Window.MinWidth {
		return barerrors.New(barerrors.ErrConfig, "window.max_width is smaller than window.min_width", "")
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return barerrors.New(barerrors.ErrConfig,
			fmt.Sprintf("unknown log format %q", c.Log.Format),
			"use \"text\" or \"json\"")
	}
	return nil
}

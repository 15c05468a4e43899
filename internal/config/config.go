package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/modhooks/internal/log"
	"github.com/dshills/modhooks/internal/settings"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "modhooks.toml"

// Config is the application configuration.
type Config struct {
	// SettingsPath is the global settings JSON file.
	SettingsPath string `toml:"settings_path"`

	// HostVersion is the host's four-part version string.
	HostVersion string `toml:"host_version"`

	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`

	// LogLevel overrides the settings level when set.
	LogLevel string `toml:"log_level"`

	// Extensions lists Lua scripts to load at start.
	Extensions []string `toml:"extensions"`

	// Watch reloads the settings file when it changes.
	Watch bool `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SettingsPath: defaultSettingsPath(),
		LogFormat:    string(log.FormatText),
	}
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "modhooks", settings.DefaultFileName)
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}

	// Relative extension paths are relative to the config file.
	base := filepath.Dir(path)
	for i, ext := range c.Extensions {
		if !filepath.IsAbs(ext) {
			c.Extensions[i] = filepath.Join(base, ext)
		}
	}
	return nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch log.Format(c.LogFormat) {
	case log.FormatText, log.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalidValue, c.LogFormat)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidValue, err)
		}
	}
	if c.SettingsPath == "" {
		return fmt.Errorf("%w: settings_path is empty", ErrInvalidValue)
	}
	return nil
}

// Level returns the configured level override, if any.
func (c Config) Level() (log.Level, bool) {
	if c.LogLevel == "" {
		return 0, false
	}
	lv, err := log.ParseLevel(c.LogLevel)
	return lv, err == nil
}

// Marshal renders c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

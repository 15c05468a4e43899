package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MODHOOKS_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetters maps environment variable names to the field they override.
var envSetters = map[string]func(c *Config, v string) error{
	EnvPrefix + "SETTINGS_PATH": func(c *Config, v string) error {
		c.SettingsPath = v
		return nil
	},
	EnvPrefix + "HOST_VERSION": func(c *Config, v string) error {
		c.HostVersion = v
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.LogFormat = strings.ToLower(v)
		return nil
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.LogLevel = v
		return nil
	},
	// A list separated like PATH.
	EnvPrefix + "EXTENSIONS": func(c *Config, v string) error {
		c.Extensions = nil
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				c.Extensions = append(c.Extensions, p)
			}
		}
		return nil
	},
	EnvPrefix + "WATCH": func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		c.Watch = b
		return nil
	},
}

// ApplyEnv overrides fields from the environment. Empty values count as
// set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for name, set := range envSetters {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
	}
	return nil
}

// EnvNames returns the recognized environment variables.
func EnvNames() []string {
	names := make([]string, 0, len(envSetters))
	for n := range envSetters {
		names = append(names, n)
	}
	return names
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}

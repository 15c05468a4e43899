package settings

import (
	"maps"

	"github.com/dshills/modhooks/internal/log"
)

// GlobalSettings is the operator configuration shared by every extension.
type GlobalSettings struct {
	LoggingLevel     log.Level       `json:"loggingLevel"`
	ShowDebugConsole bool            `json:"showDebugConsole"`
	ExtensionEnabled map[string]bool `json:"extensionEnabled"`
}

// Defaults returns the settings used when no usable file exists.
func Defaults() GlobalSettings {
	return GlobalSettings{
		LoggingLevel:     log.LevelInfo,
		ExtensionEnabled: map[string]bool{},
	}
}

// Enabled reports whether the named extension may load. Extensions not
// listed are enabled.
func (g GlobalSettings) Enabled(name string) bool {
	on, ok := g.ExtensionEnabled[name]
	return !ok || on
}

// Clone returns a deep copy of g.
func (g GlobalSettings) Clone() GlobalSettings {
	out := g
	out.ExtensionEnabled = maps.Clone(g.ExtensionEnabled)
	if out.ExtensionEnabled == nil {
		out.ExtensionEnabled = map[string]bool{}
	}
	return out
}

func (g *GlobalSettings) normalize() {
	if g.ExtensionEnabled == nil {
		g.ExtensionEnabled = map[string]bool{}
	}
	if !g.LoggingLevel.Valid() {
		g.LoggingLevel = log.LevelInfo
	}
}

package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is the operator-facing logging verbosity persisted in settings.
type Level uint8

const (
	LevelFine Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// LevelFineSlog sits below slog's debug level for per-dispatch tracing.
const LevelFineSlog = slog.LevelDebug - 4

var levelNames = [...]string{
	LevelFine:  "fine",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelOff:   "off",
}

// String returns the lowercase level name.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", l)
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return int(l) < len(levelNames)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid log level %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Slog maps the level onto a slog.Level. LevelOff maps above every level
// slog emits.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelFine:
		return LevelFineSlog
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelOff:
		return slog.LevelError + 64
	default:
		return slog.LevelInfo
	}
}

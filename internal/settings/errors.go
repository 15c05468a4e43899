package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt indicates no reader could decode the settings file.
	ErrCorrupt = errors.New("settings file is corrupt")

	// ErrLegacyFormat indicates the document is not in the legacy layout.
	ErrLegacyFormat = errors.New("not a legacy settings document")

	// ErrInvalidPath indicates an empty or malformed patch path.
	ErrInvalidPath = errors.New("invalid settings path")
)

// ParseError describes a settings document that failed to decode.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Format is the reader that rejected it ("canonical" or "legacy").
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s settings %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

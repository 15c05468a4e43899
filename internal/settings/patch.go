package settings

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Set replaces the value at path (sjson syntax, for example
// "extensionEnabled.Foo") with the JSON value raw, validates the result and
// saves it. The patch is applied to the canonical form of the current
// settings, so a legacy file is migrated by the first Set.
func (s *Store) Set(path, raw string) (GlobalSettings, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return GlobalSettings{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if !gjson.Valid(raw) {
		return GlobalSettings{}, fmt.Errorf("value for %s is not valid JSON: %s", path, raw)
	}

	doc, err := encode(s.Load())
	if err != nil {
		return GlobalSettings{}, err
	}
	doc, err = sjson.SetRawBytes(doc, path, []byte(raw))
	if err != nil {
		return GlobalSettings{}, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}

	g, err := decodeCanonical(doc)
	if err != nil {
		return GlobalSettings{}, &ParseError{Path: s.path, Format: "canonical", Err: err}
	}
	if err := s.Save(g); err != nil {
		return GlobalSettings{}, err
	}
	return g, nil
}

// Get returns the raw JSON at path in the canonical form of the current
// settings, and whether it exists.
func (s *Store) Get(path string) (string, bool) {
	doc, err := encode(s.Load())
	if err != nil {
		return "", false
	}
	res := gjson.GetBytes(doc, path)
	return res.Raw, res.Exists()
}

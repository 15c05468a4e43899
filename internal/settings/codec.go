package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dshills/modhooks/internal/log"
)

// encode renders the canonical form: indented JSON with sorted keys.
func encode(g GlobalSettings) ([]byte, error) {
	g.normalize()
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: true,
	}), nil
}

// decodeCanonical reads the current layout. Unknown keys are rejected so a
// legacy document does not half-decode into defaults.
func decodeCanonical(data []byte) (GlobalSettings, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return GlobalSettings{}, fmt.Errorf("settings document is not a JSON object")
	}
	g := Defaults()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return GlobalSettings{}, err
	}
	g.normalize()
	return g, nil
}

// Legacy key names.
const (
	legacyLevel   = "LoggingLevel"
	legacyConsole = "ShowDebugLogInGame"
	legacyEnabled = "ModEnabledSettings"
)

// decodeLegacy reads the old layout, where the level may be a number
// (0 = fine ... 5 = off) or a name.
func decodeLegacy(data []byte) (GlobalSettings, error) {
	if !gjson.ValidBytes(data) {
		return GlobalSettings{}, fmt.Errorf("%w: invalid JSON", ErrLegacyFormat)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return GlobalSettings{}, fmt.Errorf("%w: not an object", ErrLegacyFormat)
	}

	res := doc.Map()
	_, hasLevel := res[legacyLevel]
	_, hasConsole := res[legacyConsole]
	_, hasEnabled := res[legacyEnabled]
	if !hasLevel && !hasConsole && !hasEnabled {
		return GlobalSettings{}, fmt.Errorf("%w: no legacy keys", ErrLegacyFormat)
	}

	g := Defaults()
	if v, ok := res[legacyLevel]; ok {
		lv, err := legacyLevelOf(v)
		if err != nil {
			return GlobalSettings{}, err
		}
		g.LoggingLevel = lv
	}
	if v, ok := res[legacyConsole]; ok {
		if !v.IsBool() {
			return GlobalSettings{}, fmt.Errorf("%w: %s is %s", ErrLegacyFormat, legacyConsole, v.Type)
		}
		g.ShowDebugConsole = v.Bool()
	}
	if v, ok := res[legacyEnabled]; ok && v.Type != gjson.Null {
		if !v.IsObject() {
			return GlobalSettings{}, fmt.Errorf("%w: %s is not an object", ErrLegacyFormat, legacyEnabled)
		}
		var err error
		v.ForEach(func(k, on gjson.Result) bool {
			if !on.IsBool() {
				err = fmt.Errorf("%w: %s.%s is %s", ErrLegacyFormat, legacyEnabled, k.String(), on.Type)
				return false
			}
			g.ExtensionEnabled[k.String()] = on.Bool()
			return true
		})
		if err != nil {
			return GlobalSettings{}, err
		}
	}
	return g, nil
}

func legacyLevelOf(v gjson.Result) (log.Level, error) {
	switch v.Type {
	case gjson.Number:
		n := v.Int()
		if float64(n) != v.Num || n < 0 || n > int64(log.LevelOff) {
			return 0, fmt.Errorf("%w: level %s out of range", ErrLegacyFormat, v.Raw)
		}
		return log.Level(n), nil
	case gjson.String:
		lv, err := log.ParseLevel(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
		}
		return lv, nil
	default:
		return 0, fmt.Errorf("%w: level is %s", ErrLegacyFormat, v.Type)
	}
}

// Marshal returns the canonical file form of g.
func Marshal(g GlobalSettings) ([]byte, error) {
	return encode(g)
}

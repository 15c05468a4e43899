package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modhooks/internal/points"
)

type env struct {
	dir      string
	config   string
	settings string
}

func newEnv(t *testing.T, toml string) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:      dir,
		config:   filepath.Join(dir, "modhooks.toml"),
		settings: filepath.Join(dir, "settings.json"),
	}
	if toml != "" {
		require.NoError(t, os.WriteFile(e.config, []byte(toml), 0o644))
	}
	return e
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.config, "--settings", e.settings}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPointsTable(t *testing.T) {
	out, err := newEnv(t, "").run(t, "points")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `soul_gain\s+chain`, out)
	assert.Regexp(t, `dash_pressed\s+any`, out)
}

func TestPointsYAML(t *testing.T) {
	out, err := newEnv(t, "").run(t, "points", "--yaml")
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(points.Catalog()))
	assert.Equal(t, points.LanguageGet, got[0]["name"])
	assert.Equal(t, "chain", got[0]["policy"])
}

func TestVersion(t *testing.T) {
	e := newEnv(t, `host_version = "1.4.3.2"`)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "host 1.4.3.2-60")
}

func TestSettingsCommands(t *testing.T) {
	e := newEnv(t, "")

	out, err := e.run(t, "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, e.settings, strings.TrimSpace(out))

	out, err = e.run(t, "settings", "set", "extensionEnabled.Benchwarp", "false")
	require.NoError(t, err)
	assert.Contains(t, out, `"Benchwarp": false`)

	out, err = e.run(t, "settings", "get", "extensionEnabled.Benchwarp")
	require.NoError(t, err)
	assert.Equal(t, "false", strings.TrimSpace(out))

	out, err = e.run(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"loggingLevel": "info"`)

	_, err = e.run(t, "settings", "set", "loggingLevel", `"loud"`)
	assert.Error(t, err)
	_, err = e.run(t, "settings", "get", "nothing.here")
	assert.Error(t, err)
}

func TestDispatchWithExtension(t *testing.T) {
	e := newEnv(t, `extensions = ["double.lua"]`)
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "double.lua"), []byte(`
		hooks.on("soul_gain", function(n) return n * 2 end)
		hooks.on("set_player_int", function(target, v)
			if target == "geo" then return v + 1 end
		end)
	`), 0o644))

	out, err := e.run(t, "dispatch", "soul_gain", "11")
	require.NoError(t, err)
	assert.Equal(t, "22", strings.TrimSpace(out))

	out, err = e.run(t, "dispatch", "set_player_variable", "geo", "120")
	require.NoError(t, err)
	assert.Equal(t, "121", strings.TrimSpace(out))

	// The quit dispatch saved the settings with the extension recorded.
	raw, err := os.ReadFile(e.settings)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"double": true`)
}

func TestDispatchErrors(t *testing.T) {
	e := newEnv(t, "")

	_, err := e.run(t, "dispatch", "receive_death_event")
	assert.ErrorContains(t, err, "cannot be dispatched")

	_, err = e.run(t, "dispatch", "soul_gain")
	assert.ErrorContains(t, err, "usage")

	_, err = e.run(t, "dispatch", "soul_gain", "many")
	assert.Error(t, err)
}

func TestJSONValue(t *testing.T) {
	k := func(raw any) string { return jsonValue(raw).Kind().String() }
	assert.Equal(t, "int", k(float64(3)))
	assert.Equal(t, "float", k(1.5))
	assert.Equal(t, "bool", k(true))
	assert.Equal(t, "string", k("x"))
	assert.Equal(t, "vector3", k([]any{1.0, 2.0, 3.0}))
	assert.Equal(t, "generic", k([]any{1.0, "a", 3.0}))
	assert.Equal(t, "generic", k(map[string]any{}))
}

package runtime

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modhooks/internal/config"
	"github.com/dshills/modhooks/internal/log"
	"github.com/dshills/modhooks/internal/points"
	"github.com/dshills/modhooks/internal/settings"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SettingsPath = filepath.Join(t.TempDir(), settings.DefaultFileName)
	cfg.HostVersion = "1.4.3.2"
	return cfg
}

func writeScript(t *testing.T, dir, name, code string) string {
	t.Helper()
	path := filepath.Join(dir, name+".lua")
	require.NoError(t, os.WriteFile(path, []byte(code), 0o644))
	return path
}

func TestStartShutdownSavesSettings(t *testing.T) {
	cfg := testConfig(t)
	rec := log.NewRecorder()
	r := New(cfg, WithSink(rec))

	require.NoError(t, r.Start())
	assert.Equal(t, settings.Defaults(), r.Settings())
	assert.NoFileExists(t, cfg.SettingsPath)

	r.UpdateSettings(func(g *settings.GlobalSettings) { g.ShowDebugConsole = true })
	require.NoError(t, r.Shutdown())

	saved := settings.NewStore(cfg.SettingsPath, nil).Load()
	assert.True(t, saved.ShowDebugConsole)
	assert.Equal(t, 0, rec.Len())
}

func TestLifecycleErrors(t *testing.T) {
	r := New(testConfig(t), WithSink(log.NewRecorder()))
	assert.ErrorIs(t, r.Shutdown(), ErrNotStarted)

	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.Start(), ErrAlreadyStarted)
	require.NoError(t, r.Shutdown())
	require.NoError(t, r.Shutdown())
}

func TestVersion(t *testing.T) {
	r := New(testConfig(t), WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())
	defer r.Shutdown()

	assert.Equal(t, "1.4.3.2-60", r.Identifier())
}

func TestBadVersionDoesNotBlockStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.HostVersion = "bad.version"
	rec := log.NewRecorder()
	r := New(cfg, WithSink(rec))

	require.NoError(t, r.Start())
	defer r.Shutdown()
	assert.True(t, r.Version().IsZero())
	assert.Equal(t, "0.0.0.0-60", r.Identifier())
	assert.Equal(t, 1, rec.Count(log.FaultVersionParse))
}

func TestExtensionsRespectEnabledSettings(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfg.Extensions = []string{
		writeScript(t, dir, "doubler", `VERSION = "2.0"
			hooks.on("soul_gain", function(n) return n * 2 end)`),
		writeScript(t, dir, "disabled", `hooks.on("soul_gain", function(n) return 0 end)`),
		writeScript(t, dir, "broken", `this is not lua`),
	}
	store := settings.NewStore(cfg.SettingsPath, nil)
	require.NoError(t, store.Save(settings.GlobalSettings{
		LoggingLevel:     log.LevelInfo,
		ExtensionEnabled: map[string]bool{"disabled": false},
	}))

	r := New(cfg, WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())

	assert.Equal(t, map[string]string{"doubler": "2.0"}, r.LoadedExtensions())
	assert.Equal(t, 10, r.Hooks().SoulGain(5))

	require.NoError(t, r.Shutdown())
	assert.Empty(t, r.LoadedExtensions())
	assert.Equal(t, 0, r.Registry().Count(points.SoulGain))

	saved := store.Load()
	assert.Equal(t, map[string]bool{"disabled": false, "doubler": true}, saved.ExtensionEnabled)
}

func TestLoadAndUnloadExtension(t *testing.T) {
	r := New(testConfig(t), WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())
	defer r.Shutdown()

	path := writeScript(t, t.TempDir(), "dash", `hooks.on("dash_pressed", function() return true end)`)
	_, err := r.LoadExtension(path)
	require.NoError(t, err)
	_, err = r.LoadExtension(path)
	assert.ErrorIs(t, err, ErrExtensionLoaded)

	assert.True(t, r.Hooks().DashPressed())
	assert.True(t, r.UnloadExtension("dash"))
	assert.False(t, r.UnloadExtension("dash"))
	assert.False(t, r.Hooks().DashPressed())
}

func TestSaveLocalSettingsCarriesLoadedExtensions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Extensions = []string{writeScript(t, t.TempDir(), "qol", `VERSION = "1.1"`)}
	r := New(cfg, WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())
	defer r.Shutdown()

	data := &points.LocalSettings{}
	r.Hooks().SaveLocalSettings(data)
	assert.Equal(t, map[string]string{"qol": "1.1"}, data.LoadedExtensions)
}

func TestResolve(t *testing.T) {
	rec := log.NewRecorder()
	r := New(testConfig(t), WithSink(rec))

	v, ok := r.Resolve("missing")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 1, rec.Count(log.FaultDependencyResolution))
	assert.ErrorIs(t, rec.Entries()[0].Err, ErrUnresolved)

	r.Provide("greeting", "hello")
	s, ok := ResolveAs[string](r, "greeting")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = ResolveAs[int](r, "greeting")
	assert.False(t, ok)
	assert.Equal(t, 2, rec.Count(log.FaultDependencyResolution))
	assert.Equal(t, []string{"greeting"}, r.Providers())
}

func TestLogLevelFromSettingsAndConfig(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, settings.NewStore(cfg.SettingsPath, nil).Save(settings.GlobalSettings{LoggingLevel: log.LevelFine}))

	r := New(cfg, WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())
	assert.Equal(t, log.LevelFineSlog, r.level.Level())
	require.NoError(t, r.Shutdown())

	cfg.LogLevel = "error"
	r = New(cfg, WithSink(log.NewRecorder()))
	require.NoError(t, r.Start())
	assert.Equal(t, slog.LevelError, r.level.Level())
	require.NoError(t, r.Shutdown())
}

func TestShutdownSwallowsSaveFailure(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.SettingsPath = filepath.Join(blocker, "settings.json")

	rec := log.NewRecorder()
	r := New(cfg, WithSink(rec))
	require.NoError(t, r.Start())

	assert.NoError(t, r.Shutdown())
	assert.Equal(t, 1, rec.Count(log.FaultSubscriber))
	assert.GreaterOrEqual(t, rec.Count(log.FaultSerialization), 1)
}

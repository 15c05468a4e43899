package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/modhooks/internal/log"
)

func newTestStore(t *testing.T) (*Store, *log.Recorder) {
	t.Helper()
	rec := log.NewRecorder()
	return NewStore(filepath.Join(t.TempDir(), DefaultFileName), rec), rec
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, rec := newTestStore(t)

	g := s.Load()
	assert.Equal(t, Defaults(), g)
	assert.NotNil(t, g.ExtensionEnabled)
	assert.Equal(t, 0, rec.Len())
	assert.NoFileExists(t, s.Path()+QuarantineSuffix)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	want := GlobalSettings{
		LoggingLevel:     log.LevelWarn,
		ShowDebugConsole: true,
		ExtensionEnabled: map[string]bool{"Benchwarp": true, "Randomizer": false},
	}

	require.NoError(t, s.Save(want))
	assert.Equal(t, want, s.Load())

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"loggingLevel": "warn"`)
}

func TestSaveLoadRoundTripProperty(t *testing.T) {
	s, _ := newTestStore(t)

	rapid.Check(t, func(rt *rapid.T) {
		want := GlobalSettings{
			LoggingLevel:     log.Level(rapid.IntRange(int(log.LevelFine), int(log.LevelOff)).Draw(rt, "level")),
			ShowDebugConsole: rapid.Bool().Draw(rt, "console"),
			ExtensionEnabled: rapid.MapOf(rapid.StringMatching(`[A-Za-z0-9_. -]{1,16}`), rapid.Bool()).Draw(rt, "enabled"),
		}
		if err := s.Save(want); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got := s.Load()
		if got.LoggingLevel != want.LoggingLevel || got.ShowDebugConsole != want.ShowDebugConsole {
			rt.Fatalf("got %+v, want %+v", got, want)
		}
		if len(got.ExtensionEnabled) != len(want.ExtensionEnabled) {
			rt.Fatalf("enabled map: got %v, want %v", got.ExtensionEnabled, want.ExtensionEnabled)
		}
		for k, v := range want.ExtensionEnabled {
			if got.ExtensionEnabled[k] != v {
				rt.Fatalf("enabled[%q]: got %v, want %v", k, got.ExtensionEnabled[k], v)
			}
		}
	})
}

func TestSaveNilMapLoadsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save(GlobalSettings{LoggingLevel: log.LevelDebug}))

	g := s.Load()
	assert.Equal(t, log.LevelDebug, g.LoggingLevel)
	assert.NotNil(t, g.ExtensionEnabled)
	assert.Empty(t, g.ExtensionEnabled)
}

func TestLoadGarbageQuarantines(t *testing.T) {
	s, rec := newTestStore(t)
	garbage := "\x00\xffnot json at all{{"
	writeFile(t, s.Path(), garbage)

	g := s.Load()
	assert.Equal(t, Defaults(), g)
	assert.NoFileExists(t, s.Path())

	raw, err := os.ReadFile(s.Path() + QuarantineSuffix)
	require.NoError(t, err)
	assert.Equal(t, garbage, string(raw))
	assert.Equal(t, 1, rec.Count(log.FaultCorruptState))

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.ErrorIs(t, entries[0].Err, ErrCorrupt)
}

func TestQuarantineKeepsEarlierCopies(t *testing.T) {
	s, _ := newTestStore(t)

	writeFile(t, s.Path(), "first")
	s.Load()
	writeFile(t, s.Path(), "second")
	s.Load()

	first, err := os.ReadFile(s.Path() + QuarantineSuffix)
	require.NoError(t, err)
	second, err := os.ReadFile(s.Path() + QuarantineSuffix + ".1")
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))
	assert.Equal(t, "second", string(second))
}

func TestLoadNonObjectQuarantines(t *testing.T) {
	for _, doc := range []string{"null", "[1,2]", `"info"`, `{"extensionEnabled": 3}`} {
		t.Run(doc, func(t *testing.T) {
			s, rec := newTestStore(t)
			writeFile(t, s.Path(), doc)

			assert.Equal(t, Defaults(), s.Load())
			assert.FileExists(t, s.Path()+QuarantineSuffix)
			assert.Equal(t, 1, rec.Count(log.FaultCorruptState))
		})
	}
}

func TestSaveKeepsOneBackup(t *testing.T) {
	s, _ := newTestStore(t)
	first := GlobalSettings{LoggingLevel: log.LevelDebug, ExtensionEnabled: map[string]bool{"A": true}}
	second := GlobalSettings{LoggingLevel: log.LevelError, ExtensionEnabled: map[string]bool{"B": false}}

	require.NoError(t, s.Save(first))
	assert.NoFileExists(t, s.BackupPath())
	require.NoError(t, s.Save(second))

	matches, err := filepath.Glob(s.Path() + "*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{s.Path(), s.BackupPath()}, matches)

	assert.Equal(t, second, s.Load())
	assert.Equal(t, first, NewStore(s.BackupPath(), nil).Load())

	third := Defaults()
	require.NoError(t, s.Save(third))
	assert.Equal(t, second, NewStore(s.BackupPath(), nil).Load())
}

func TestLoadLegacyFormat(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want GlobalSettings
	}{
		{
			name: "numeric level",
			doc:  `{"LoggingLevel": 1, "ShowDebugLogInGame": true, "ModEnabledSettings": {"QoL": false, "Benchwarp": true}}`,
			want: GlobalSettings{
				LoggingLevel:     log.LevelDebug,
				ShowDebugConsole: true,
				ExtensionEnabled: map[string]bool{"QoL": false, "Benchwarp": true},
			},
		},
		{
			name: "named level",
			doc:  `{"LoggingLevel": "Warn", "ModEnabledSettings": null}`,
			want: GlobalSettings{LoggingLevel: log.LevelWarn, ExtensionEnabled: map[string]bool{}},
		},
		{
			name: "only console flag",
			doc:  `{"ShowDebugLogInGame": false, "ModEnabledSettings": {}}`,
			want: Defaults(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestStore(t)
			writeFile(t, s.Path(), tt.doc)

			assert.Equal(t, tt.want, s.Load())
			assert.Equal(t, 0, rec.Count(log.FaultCorruptState))
			assert.NoFileExists(t, s.Path()+QuarantineSuffix)
		})
	}
}

func TestLegacyMigratesOnSave(t *testing.T) {
	s, _ := newTestStore(t)
	writeFile(t, s.Path(), `{"LoggingLevel": 4, "ShowDebugLogInGame": true, "ModEnabledSettings": {"X": false}}`)

	require.NoError(t, s.Save(s.Load()))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"loggingLevel": "error"`)
	assert.NotContains(t, string(raw), "ModEnabledSettings")

	legacy, err := os.ReadFile(s.BackupPath())
	require.NoError(t, err)
	assert.Contains(t, string(legacy), "ModEnabledSettings")
}

func TestLoadLegacyBadTypesQuarantines(t *testing.T) {
	for _, doc := range []string{
		`{"LoggingLevel": 9}`,
		`{"LoggingLevel": "loud"}`,
		`{"ShowDebugLogInGame": "yes"}`,
		`{"ModEnabledSettings": {"A": 1}}`,
	} {
		t.Run(doc, func(t *testing.T) {
			s, rec := newTestStore(t)
			writeFile(t, s.Path(), doc)

			assert.Equal(t, Defaults(), s.Load())
			assert.Equal(t, 1, rec.Count(log.FaultCorruptState))
		})
	}
}

func TestEnabled(t *testing.T) {
	g := GlobalSettings{ExtensionEnabled: map[string]bool{"off": false, "on": true}}
	assert.False(t, g.Enabled("off"))
	assert.True(t, g.Enabled("on"))
	assert.True(t, g.Enabled("unlisted"))
}

func TestClone(t *testing.T) {
	g := GlobalSettings{ExtensionEnabled: map[string]bool{"a": true}}
	c := g.Clone()
	c.ExtensionEnabled["a"] = false
	assert.True(t, g.ExtensionEnabled["a"])
}

func TestSetPatchesAndSaves(t *testing.T) {
	s, _ := newTestStore(t)

	g, err := s.Set("extensionEnabled.Benchwarp", "false")
	require.NoError(t, err)
	assert.False(t, g.Enabled("Benchwarp"))

	g, err = s.Set("loggingLevel", `"fine"`)
	require.NoError(t, err)
	assert.Equal(t, log.LevelFine, g.LoggingLevel)
	assert.False(t, g.Enabled("Benchwarp"))

	assert.Equal(t, g, s.Load())
	raw, ok := s.Get("extensionEnabled.Benchwarp")
	assert.True(t, ok)
	assert.Equal(t, "false", raw)
}

func TestSetRejectsInvalid(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save(Defaults()))

	_, err := s.Set("", "true")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Set("loggingLevel", "not json")
	assert.Error(t, err)

	_, err = s.Set("loggingLevel", `"loud"`)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = s.Set("unknownKey", "1")
	assert.Error(t, err)

	assert.Equal(t, Defaults(), s.Load())
	assert.NoFileExists(t, s.BackupPath())
}

func TestWatchReportsExternalChange(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save(Defaults()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan GlobalSettings, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(g GlobalSettings) { changes <- g })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, s.Path(), `{"loggingLevel": "debug", "showDebugConsole": true, "extensionEnabled": {}}`)

	select {
	case g := <-changes:
		assert.Equal(t, log.LevelDebug, g.LoggingLevel)
		assert.True(t, g.ShowDebugConsole)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

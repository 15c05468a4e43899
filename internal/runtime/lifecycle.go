package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/luaext"
	"github.com/dshills/modhooks/internal/points"
	"github.com/dshills/modhooks/internal/settings"
	"github.com/dshills/modhooks/internal/version"
)

// Start loads the settings, parses the host version, subscribes the
// settings save to application_quit and loads the configured extensions.
// A failing step undoes the steps before it.
func (r *Runtime) Start() error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"settings", r.initSettings},
		{"version", r.initVersion},
		{"quit hook", r.initQuitHook},
		{"extensions", r.initExtensions},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			r.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
	}

	r.sink.Info("modhooks started",
		"version", r.Identifier(),
		"extensions", len(r.LoadedExtensions()),
		"settings", r.store.Path(),
	)
	return nil
}

func (r *Runtime) initSettings() error {
	g := r.store.Load()
	r.mu.Lock()
	r.settings = g
	r.mu.Unlock()
	r.applyLevel(g)
	return nil
}

func (r *Runtime) initVersion() error {
	v := version.Parse(r.cfg.HostVersion, r.sink)
	r.mu.Lock()
	r.version = v
	r.mu.Unlock()
	return nil
}

// initQuitHook saves the settings when the host quits. A failed save is
// reported through the registry like any subscriber failure.
func (r *Runtime) initQuitHook() error {
	_, err := hook.OnNotify(r.reg, points.ApplicationQuit, Owner, func(hook.NoArgs) error {
		r.sink.Info("saving global settings")
		return r.SaveSettings()
	})
	return err
}

// initExtensions loads each configured script. Disabled extensions are
// skipped; a script that fails to load is logged and skipped.
func (r *Runtime) initExtensions() error {
	for _, path := range r.cfg.Extensions {
		name := luaext.NameFromPath(path)
		if !r.Settings().Enabled(name) {
			r.sink.Info("extension disabled in settings", "extension", name)
			continue
		}
		if _, err := r.LoadExtension(path); err != nil {
			r.sink.Error("extension failed to load", "extension", name, "error", err)
		}
	}
	return nil
}

// LoadExtension loads a Lua script and records it as enabled if the
// settings did not list it yet.
func (r *Runtime) LoadExtension(path string) (*luaext.Extension, error) {
	name := luaext.NameFromPath(path)
	r.mu.Lock()
	loaded := slices.ContainsFunc(r.exts, func(x *luaext.Extension) bool { return x.Name() == name })
	r.mu.Unlock()
	if loaded {
		return nil, fmt.Errorf("%w: %s", ErrExtensionLoaded, name)
	}

	x, err := luaext.Load(path, r.reg, r.sink, luaext.WithTimeout(r.timeout))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.exts = append(r.exts, x)
	if _, known := r.settings.ExtensionEnabled[name]; !known {
		r.settings.ExtensionEnabled[name] = true
	}
	r.mu.Unlock()
	return x, nil
}

// UnloadExtension removes the named extension and its subscriptions.
func (r *Runtime) UnloadExtension(name string) bool {
	r.mu.Lock()
	i := slices.IndexFunc(r.exts, func(x *luaext.Extension) bool { return x.Name() == name })
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	x := r.exts[i]
	r.exts = slices.Delete(r.exts, i, i+1)
	r.mu.Unlock()

	x.Close()
	return true
}

// Shutdown dispatches application_quit, which saves the settings, then
// closes every extension. Later calls do nothing.
func (r *Runtime) Shutdown() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrNotStarted
	}
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	r.mu.Unlock()

	r.hooks.ApplicationQuit()
	r.cleanup()
	r.sink.Info("modhooks stopped")
	return nil
}

// cleanup closes extensions in reverse load order and drops the runtime's
// own subscriptions.
func (r *Runtime) cleanup() {
	r.mu.Lock()
	exts := r.exts
	r.exts = nil
	r.mu.Unlock()

	for i := len(exts) - 1; i >= 0; i-- {
		exts[i].Close()
	}
	r.reg.UnregisterOwner(Owner)
}

// Watch reloads the settings when the file changes on disk until ctx is
// done.
func (r *Runtime) Watch(ctx context.Context, fn func(settings.GlobalSettings)) error {
	return r.store.Watch(ctx, func(g settings.GlobalSettings) {
		r.UpdateSettings(func(cur *settings.GlobalSettings) { *cur = g })
		r.sink.Info("settings reloaded", "level", g.LoggingLevel)
		if fn != nil {
			fn(g)
		}
	})
}

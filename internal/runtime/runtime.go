// Package runtime owns the process-wide hook engine: the registry, the
// global settings, the host version and the loaded extensions.
package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/dshills/modhooks/internal/config"
	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/log"
	"github.com/dshills/modhooks/internal/luaext"
	"github.com/dshills/modhooks/internal/points"
	"github.com/dshills/modhooks/internal/settings"
	"github.com/dshills/modhooks/internal/version"
)

// Owner is the subscription owner used for the runtime's own subscribers.
const Owner = "modhooks"

// Runtime is the single engine instance of a process. Construct it with New
// and call Start before dispatching.
type Runtime struct {
	cfg     config.Config
	level   *slog.LevelVar
	sink    log.Sink
	timeout time.Duration

	reg   *hook.Registry
	hooks *points.Hooks
	store *settings.Store

	mu        sync.Mutex
	settings  settings.GlobalSettings
	version   version.Info
	exts      []*luaext.Extension
	providers map[string]any
	started   bool
	stopped   bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sends log records to w in the configured format.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.sink = log.NewSink(log.New(w, log.Format(r.cfg.LogFormat), r.level))
	}
}

// WithSink replaces the log sink.
func WithSink(s log.Sink) Option {
	return func(r *Runtime) { r.sink = s }
}

// WithExtensionTimeout bounds each call into a Lua extension.
func WithExtensionTimeout(d time.Duration) Option {
	return func(r *Runtime) { r.timeout = d }
}

// New builds a runtime from cfg. Logs go to stderr unless an option says
// otherwise.
func New(cfg config.Config, opts ...Option) *Runtime {
	r := &Runtime{
		cfg:       cfg,
		level:     new(slog.LevelVar),
		timeout:   luaext.DefaultExecutionTimeout,
		providers: make(map[string]any),
		settings:  settings.Defaults(),
	}
	r.sink = log.NewSink(log.New(os.Stderr, log.Format(cfg.LogFormat), r.level))
	for _, opt := range opts {
		opt(r)
	}

	r.reg = points.NewRegistry(hook.WithSink(r.sink))
	r.hooks = points.New(r.reg, r.LoadedExtensions)
	r.store = settings.NewStore(cfg.SettingsPath, r.sink)
	return r
}

// Hooks returns the typed dispatch entry points.
func (r *Runtime) Hooks() *points.Hooks { return r.hooks }

// Registry returns the hook registry.
func (r *Runtime) Registry() *hook.Registry { return r.reg }

// Store returns the settings store.
func (r *Runtime) Store() *settings.Store { return r.store }

// Sink returns the log sink.
func (r *Runtime) Sink() log.Sink { return r.sink }

// Config returns the configuration the runtime was built with.
func (r *Runtime) Config() config.Config { return r.cfg }

// Version returns the parsed host version.
func (r *Runtime) Version() version.Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Identifier returns the diagnostic version identifier.
func (r *Runtime) Identifier() string {
	return version.Identifier(r.Version())
}

// Settings returns a copy of the current global settings.
func (r *Runtime) Settings() settings.GlobalSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.Clone()
}

// UpdateSettings applies fn to the in-memory settings and the log level.
// It does not save.
func (r *Runtime) UpdateSettings(fn func(*settings.GlobalSettings)) {
	r.mu.Lock()
	g := r.settings.Clone()
	fn(&g)
	r.settings = g
	r.mu.Unlock()
	r.applyLevel(g)
}

// SaveSettings writes the current settings through the store.
func (r *Runtime) SaveSettings() error {
	return r.store.Save(r.Settings())
}

// applyLevel sets the log level from the config override or g.
func (r *Runtime) applyLevel(g settings.GlobalSettings) {
	lv := g.LoggingLevel
	if override, ok := r.cfg.Level(); ok {
		lv = override
	}
	r.level.Set(lv.Slog())
}

// LoadedExtensions maps each loaded extension to its version.
func (r *Runtime) LoadedExtensions() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.exts))
	for _, x := range r.exts {
		out[x.Name()] = x.Version()
	}
	return out
}

// Provide makes v resolvable under name.
func (r *Runtime) Provide(name string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = v
}

// Providers returns the names of every provided dependency.
func (r *Runtime) Providers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.providers))
}

// Resolve looks up a provided dependency. A miss is logged as a
// dependency-resolution fault and reported as (nil, false).
func (r *Runtime) Resolve(name string) (any, bool) {
	r.mu.Lock()
	v, ok := r.providers[name]
	r.mu.Unlock()
	if !ok {
		r.sink.Fault(log.FaultDependencyResolution, "could not resolve dependency", ErrUnresolved, "name", name)
		return nil, false
	}
	return v, true
}

// ResolveAs is Resolve with a type check. A provider of the wrong type is
// also a resolution fault.
func ResolveAs[T any](r *Runtime, name string) (T, bool) {
	var zero T
	v, ok := r.Resolve(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		r.sink.Fault(log.FaultDependencyResolution, "dependency has unexpected type", ErrUnresolved,
			"name", name, "type", fmt.Sprintf("%T", v), "want", fmt.Sprintf("%T", zero))
		return zero, false
	}
	return t, true
}

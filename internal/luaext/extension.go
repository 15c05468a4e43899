package luaext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/log"
)

// Extension is one loaded Lua script. Its subscriptions are owned by its
// name.
type Extension struct {
	name    string
	version string
	reg     *hook.Registry
	sink    log.Sink
	st      *state

	mu   sync.Mutex
	subs map[string]hook.Subscription
}

// Option configures an Extension.
type Option func(*options)

type options struct {
	timeout time.Duration
	name    string
}

// WithTimeout bounds each call into the script. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithName overrides the name derived from the file name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// NameFromPath returns the extension name for a script path: the base name
// without its extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load runs the script at path against r.
func Load(path string, r *hook.Registry, sink log.Sink, opts ...Option) (*Extension, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extension %s: %w", path, err)
	}
	opts = append([]Option{WithName(NameFromPath(path))}, opts...)
	return LoadString(string(code), r, sink, opts...)
}

// LoadString runs code as an extension. If the script fails, anything it
// registered is removed and the error is returned.
func LoadString(code string, r *hook.Registry, sink log.Sink, opts ...Option) (*Extension, error) {
	o := options{timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		return nil, errors.New("extension name is empty")
	}
	if sink == nil {
		sink = log.Nop()
	}

	x := &Extension{
		name: o.name,
		reg:  r,
		sink: sink,
		st:   newState(o.timeout, sink, o.name),
		subs: make(map[string]hook.Subscription),
	}
	x.installModule()

	err := x.st.run(func(L *lua.LState) error {
		if err := L.DoString(code); err != nil {
			return err
		}
		if v, ok := L.GetGlobal("VERSION").(lua.LString); ok {
			x.version = string(v)
		}
		return nil
	})
	if err != nil {
		x.Close()
		return nil, fmt.Errorf("load extension %s: %w", o.name, err)
	}
	if x.version == "" {
		x.version = "unknown"
	}
	sink.Info("loaded extension", "extension", x.name, "version", x.version, "subscriptions", x.Count())
	return x, nil
}

// Name returns the extension name.
func (x *Extension) Name() string { return x.name }

// Version returns the script's VERSION global, or "unknown".
func (x *Extension) Version() string { return x.version }

// Count returns the number of live subscriptions.
func (x *Extension) Count() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.subs)
}

// Close unregisters every subscription and releases the Lua state.
func (x *Extension) Close() {
	x.mu.Lock()
	x.subs = map[string]hook.Subscription{}
	x.mu.Unlock()

	n := x.reg.UnregisterOwner(x.name)
	x.st.close()
	x.sink.Debug("closed extension", "extension", x.name, "removed", n)
}

// installModule exposes the hooks table.
func (x *Extension) installModule() {
	L := x.st.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"on":     x.luaOn,
		"off":    x.luaOff,
		"points": x.luaPoints,
		"log":    x.luaLog,
	})
	L.SetField(mod, "name", lua.LString(x.name))
	L.SetGlobal("hooks", mod)
}

// hooks.on(point, fn) -> id | nil, err
func (x *Extension) luaOn(L *lua.LState) int {
	point := L.CheckString(1)
	fn := L.CheckFunction(2)

	sub, err := x.subscribe(point, fn)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(sub.ID))
	return 1
}

// hooks.off(id) -> bool
func (x *Extension) luaOff(L *lua.LState) int {
	id := L.CheckString(1)

	x.mu.Lock()
	sub, ok := x.subs[id]
	delete(x.subs, id)
	x.mu.Unlock()

	L.Push(lua.LBool(ok && x.reg.Unregister(sub)))
	return 1
}

// hooks.points() -> {name, ...}
func (x *Extension) luaPoints(L *lua.LState) int {
	L.Push(pointNames(L, x.reg))
	return 1
}

// hooks.log(msg, ...)
func (x *Extension) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	x.sink.Info(strings.Join(parts, " "), "extension", x.name)
	return 0
}

func (x *Extension) subscribe(point string, fn *lua.LFunction) (hook.Subscription, error) {
	adapt, ok := adapters[point]
	if !ok {
		if _, defined := x.reg.Point(point); defined {
			return hook.Subscription{}, fmt.Errorf("%w: %s", ErrNoAdapter, point)
		}
		return hook.Subscription{}, fmt.Errorf("%w: %s", hook.ErrUnknownPoint, point)
	}
	sub, err := adapt(x, point, fn)
	if err != nil {
		return hook.Subscription{}, err
	}

	x.mu.Lock()
	x.subs[sub.ID] = sub
	x.mu.Unlock()
	return sub, nil
}

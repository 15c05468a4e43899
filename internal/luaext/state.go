package luaext

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modhooks/internal/log"
)

// DefaultExecutionTimeout bounds a single load or subscriber call.
const DefaultExecutionTimeout = 2 * time.Second

// state wraps an LState. gopher-lua states are not goroutine-safe, so every
// entry into Lua holds mu.
type state struct {
	L       *lua.LState
	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

func newState(timeout time.Duration, sink log.Logger, owner string) *state {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	sandbox(L, sink, owner)
	return &state{L: L, timeout: timeout}
}

// openSafeLibraries opens the base, table, string and math libraries only.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// sandbox removes the loaders and routes print to the log.
func sandbox(L *lua.LState, sink log.Logger, owner string) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		sink.Info(strings.Join(parts, "\t"), "extension", owner)
		return 0
	}))
}

// run executes fn with the state locked and the execution timeout armed.
func (s *state) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(s.L)
}

// call invokes fn with args and returns nret results.
func (s *state) call(fn *lua.LFunction, nret int, args ...any) ([]lua.LValue, error) {
	var out []lua.LValue
	err := s.run(func(L *lua.LState) error {
		largs := make([]lua.LValue, 0, len(args))
		for _, a := range args {
			if skipArg(a) {
				continue
			}
			largs = append(largs, toLua(L, a))
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, largs...); err != nil {
			return err
		}
		out = make([]lua.LValue, nret)
		for i := nret - 1; i >= 0; i-- {
			out[i] = L.Get(-1)
			L.Pop(1)
		}
		return nil
	})
	return out, err
}

func (s *state) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}

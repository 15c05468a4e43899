package luaext

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/hook/value"
	"github.com/dshills/modhooks/internal/points"
)

// adapter registers a Lua function on point with the Go shape that point
// is dispatched with.
type adapter func(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error)

var adapters = map[string]adapter{
	points.LanguageGet:          chain[points.LanguageKey, string],
	points.Cursor:               notify[hook.NoArgs],
	points.ColliderCreate:       notify[points.Object],
	points.ObjectPoolSpawn:      chain[hook.NoArgs, points.Object],
	points.ApplicationQuit:      notify[hook.NoArgs],
	points.HitInstance:          chain[points.Object, points.Object],
	points.DrawBlackBorders:     notify[[]points.Object],
	points.OnEnableEnemy:        chain[points.Object, bool],
	points.ReceiveDeathEvent:    deathEvent,
	points.RecordKillForJournal: notify[points.JournalKill],

	points.SetPlayerBool:     chain[string, bool],
	points.GetPlayerBool:     chain[string, bool],
	points.SetPlayerInt:      chain[string, int],
	points.GetPlayerInt:      chain[string, int],
	points.SetPlayerFloat:    chain[string, float32],
	points.GetPlayerFloat:    chain[string, float32],
	points.SetPlayerString:   chain[string, string],
	points.GetPlayerString:   chain[string, string],
	points.SetPlayerVector3:  chain[string, value.Vector3],
	points.GetPlayerVector3:  chain[string, value.Vector3],
	points.SetPlayerVariable: variable(points.OnSetPlayerVariable),
	points.GetPlayerVariable: variable(points.OnGetPlayerVariable),

	points.BlueHealth:       lastWins[hook.NoArgs, int],
	points.TakeHealth:       chain[hook.NoArgs, int],
	points.TakeDamage:       takeDamage,
	points.AfterTakeDamage:  chain[int, int],
	points.BeforePlayerDead: notify[hook.NoArgs],
	points.AfterPlayerDead:  notify[hook.NoArgs],
	points.Attack:           notify[points.AttackDirection],
	points.DoAttack:         notify[hook.NoArgs],
	points.AfterAttack:      notify[points.AttackDirection],
	points.SlashHit:         notify[points.SlashHitEvent],
	points.CharmUpdate:      notify[points.CharmUpdateEvent],
	points.HeroUpdate:       notify[hook.NoArgs],
	points.BeforeAddHealth:  chain[hook.NoArgs, int],
	points.FocusCost:        lastWins[hook.NoArgs, float32],
	points.SoulGain:         chain[hook.NoArgs, int],
	points.DashVector:       chain[hook.NoArgs, points.Vector2],
	points.DashPressed:      anyVote,

	points.SavegameLoad:       notify[int],
	points.SavegameSave:       notify[int],
	points.NewGame:            notify[hook.NoArgs],
	points.SavegameClear:      notify[int],
	points.AfterSavegameLoad:  notify[points.Object],
	points.BeforeSavegameSave: notify[points.Object],
	points.GetSaveFileName:    lastWins[int, string],
	points.AfterSavegameClear: notify[int],
	points.SaveLocalSettings:  saveLocal,
	points.LoadLocalSettings:  loadLocal,

	points.SceneChanged:    notify[string],
	points.BeforeSceneLoad: chain[hook.NoArgs, string],
}

// notify calls fn(payload) and ignores its results.
func notify[P any](x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnNotify(x.reg, point, x.name, func(p P) error {
		_, err := x.st.call(fn, 0, p)
		return err
	})
}

// chain calls fn(args, value); nil keeps value.
func chain[A, T any](x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnChain(x.reg, point, x.name, func(args A, v T) (T, bool, error) {
		ret, err := x.st.call(fn, 1, args, v)
		if err != nil {
			return v, false, err
		}
		if ret[0] == lua.LNil {
			return v, false, nil
		}
		next, err := fromLua[T](ret[0])
		if err != nil {
			return v, false, err
		}
		return next, true, nil
	})
}

// lastWins calls fn(input); nil is the zero value.
func lastWins[I, R any](x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnLastWins(x.reg, point, x.name, func(in I) (R, error) {
		var zero R
		ret, err := x.st.call(fn, 1, in)
		if err != nil {
			return zero, err
		}
		if ret[0] == lua.LNil {
			return zero, nil
		}
		return fromLua[R](ret[0])
	})
}

func anyVote(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnAny(x.reg, point, x.name, func() (bool, error) {
		ret, err := x.st.call(fn, 1)
		if err != nil {
			return false, err
		}
		return lua.LVAsBool(ret[0]), nil
	})
}

func variable(on func(*hook.Registry, string, points.VariableFunc) (hook.Subscription, error)) adapter {
	return func(x *Extension, _ string, fn *lua.LFunction) (hook.Subscription, error) {
		return on(x.reg, x.name, func(target string, v value.Value) (value.Value, bool, error) {
			ret, err := x.st.call(fn, 1, target, v)
			if err != nil || ret[0] == lua.LNil {
				return v, false, err
			}
			next, err := fromLua[value.Value](ret[0])
			if err != nil {
				return v, false, err
			}
			return next, true, nil
		})
	}
}

// takeDamage calls fn(damage, hazard) -> damage[, hazard].
func takeDamage(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnChainMutate(x.reg, point, x.name, func(_ hook.NoArgs, damage int, hazard *int) (int, bool, error) {
		ret, err := x.st.call(fn, 2, damage, *hazard)
		if err != nil {
			return damage, false, err
		}
		if ret[1] != lua.LNil {
			h, err := fromLua[int](ret[1])
			if err != nil {
				return damage, false, err
			}
			*hazard = h
		}
		if ret[0] == lua.LNil {
			return damage, false, nil
		}
		next, err := fromLua[int](ret[0])
		if err != nil {
			return damage, false, err
		}
		return next, true, nil
	})
}

// deathEvent calls fn(event, fields) and copies the fields table back.
func deathEvent(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnMutate(x.reg, point, x.name, func(ev points.DeathEvent, f *points.DeathFields) error {
		var dir any
		if f.AttackDirection != nil {
			dir = *f.AttackDirection
		}
		var tbl *lua.LTable
		_, err := x.st.call(fn, 0, ev, lazyTable(&tbl, func(L *lua.LState) *lua.LTable {
			return record(L,
				"attackDirection", dir,
				"resetDeathEvent", f.ResetDeathEvent,
				"spellBurn", f.SpellBurn,
				"isWatery", f.IsWatery,
			)
		}))
		if err != nil {
			return err
		}

		if n, ok := tbl.RawGetString("attackDirection").(lua.LNumber); ok {
			d := float32(n)
			f.AttackDirection = &d
		} else {
			f.AttackDirection = nil
		}
		f.ResetDeathEvent = lua.LVAsBool(tbl.RawGetString("resetDeathEvent"))
		f.SpellBurn = lua.LVAsBool(tbl.RawGetString("spellBurn"))
		f.IsWatery = lua.LVAsBool(tbl.RawGetString("isWatery"))
		return nil
	})
}

// saveLocal calls fn() and stores its result as the extension's entry.
func saveLocal(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnNotify(x.reg, point, x.name, func(s *points.LocalSettings) error {
		ret, err := x.st.call(fn, 1)
		if err != nil {
			return err
		}
		if ret[0] == lua.LNil {
			return nil
		}
		if s.Data == nil {
			s.Data = map[string]any{}
		}
		s.Data[x.name] = toGo(ret[0])
		return nil
	})
}

// loadLocal calls fn(entry) with the extension's stored entry.
func loadLocal(x *Extension, point string, fn *lua.LFunction) (hook.Subscription, error) {
	return hook.OnNotify(x.reg, point, x.name, func(s *points.LocalSettings) error {
		var entry any
		if s != nil {
			entry = s.Data[x.name]
		}
		_, err := x.st.call(fn, 0, entry)
		return err
	})
}

// tableBuilder defers table construction until the state is locked.
type tableBuilder struct {
	dst   **lua.LTable
	build func(L *lua.LState) *lua.LTable
}

func lazyTable(dst **lua.LTable, build func(L *lua.LState) *lua.LTable) tableBuilder {
	return tableBuilder{dst: dst, build: build}
}

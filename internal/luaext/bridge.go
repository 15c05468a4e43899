package luaext

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/hook/value"
	"github.com/dshills/modhooks/internal/points"
)

func skipArg(v any) bool {
	_, ok := v.(hook.NoArgs)
	return ok
}

// toLua converts a payload into a Lua value. Host objects the bridge does
// not know travel as userdata and come back unchanged.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case value.Value:
		return toLua(L, v.Interface())
	case value.Vector3:
		return record(L, "x", v.X, "y", v.Y, "z", v.Z)
	case points.Vector2:
		return record(L, "x", v.X, "y", v.Y)
	case points.AttackDirection:
		return lua.LString(v.String())
	case points.LanguageKey:
		return record(L, "key", v.Key, "sheet", v.Sheet, "orig", v.Orig)
	case points.DeathEvent:
		return record(L, "effects", v.Effects, "alreadyReceived", v.AlreadyReceived)
	case points.JournalKill:
		return record(L,
			"effects", v.Effects,
			"playerDataName", v.PlayerDataName,
			"killedBoolKey", v.KilledBoolKey,
			"killCountIntKey", v.KillCountIntKey,
			"newDataBoolKey", v.NewDataBoolKey,
		)
	case points.SlashHitEvent:
		return record(L, "collider", v.Collider, "source", v.Source)
	case points.CharmUpdateEvent:
		return record(L, "playerData", v.PlayerData, "hero", v.Hero)
	case []points.Object:
		t := L.CreateTable(len(v), 0)
		for i, o := range v {
			t.RawSetInt(i+1, toLua(L, o))
		}
		return t
	case []any:
		t := L.CreateTable(len(v), 0)
		for i, o := range v {
			t.RawSetInt(i+1, toLua(L, o))
		}
		return t
	case map[string]string:
		t := L.CreateTable(0, len(v))
		for k, s := range v {
			t.RawSetString(k, lua.LString(s))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(v))
		for k, o := range v {
			t.RawSetString(k, toLua(L, o))
		}
		return t
	case tableBuilder:
		t := v.build(L)
		*v.dst = t
		return t
	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}

// record builds a table from alternating keys and values.
func record(L *lua.LState, kv ...any) *lua.LTable {
	t := L.CreateTable(0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		t.RawSetString(kv[i].(string), toLua(L, kv[i+1]))
	}
	return t
}

// toGo converts a Lua value into plain Go data. Integral numbers become
// int64, arrays []any and other tables map[string]any. Cycles are cut.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, map[*lua.LTable]bool{})
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case nil, *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })
	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})
	return m
}

// fromLua converts a subscriber result into T.
func fromLua[T any](lv lua.LValue) (T, error) {
	var out T
	bad := func() (T, error) {
		var zero T
		return zero, fmt.Errorf("%w: got %s, want %T", ErrResultType, lv.Type(), out)
	}

	switch p := any(&out).(type) {
	case *string:
		s, ok := lv.(lua.LString)
		if !ok {
			return bad()
		}
		*p = string(s)
	case *bool:
		b, ok := lv.(lua.LBool)
		if !ok {
			return bad()
		}
		*p = bool(b)
	case *int:
		n, ok := lv.(lua.LNumber)
		if !ok || float64(n) != float64(int(n)) {
			return bad()
		}
		*p = int(n)
	case *float32:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return bad()
		}
		*p = float32(n)
	case *value.Vector3:
		t, ok := lv.(*lua.LTable)
		if !ok {
			return bad()
		}
		*p = value.Vector3{X: field(t, "x"), Y: field(t, "y"), Z: field(t, "z")}
	case *points.Vector2:
		t, ok := lv.(*lua.LTable)
		if !ok {
			return bad()
		}
		*p = points.Vector2{X: field(t, "x"), Y: field(t, "y")}
	case *points.Object:
		*p = toGo(lv)
	case *value.Value:
		*p = value.Generic(toGo(lv))
	default:
		return out, fmt.Errorf("%w: unsupported result type %T", ErrResultType, out)
	}
	return out, nil
}

func field(t *lua.LTable, name string) float32 {
	n, _ := t.RawGetString(name).(lua.LNumber)
	return float32(n)
}

// pointNames returns the sorted names of the registry's points as a table.
func pointNames(L *lua.LState, r *hook.Registry) *lua.LTable {
	pts := r.Points()
	names := make([]string, 0, len(pts))
	for _, p := range pts {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	t := L.CreateTable(len(names), 0)
	for i, n := range names {
		t.RawSetInt(i+1, lua.LString(n))
	}
	return t
}

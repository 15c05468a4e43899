package points

import (
	"fmt"
	"reflect"

	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/hook/value"
)

type accessor struct {
	set func(h *Hooks, target string, v value.Value) value.Value
	get func(h *Hooks, target string, v value.Value) value.Value
}

// accessors routes a Value to the typed point for its kind. Generic values
// go through the variable points.
var accessors = [value.NumKinds]accessor{
	value.KindBool: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			b, _ := v.AsBool()
			return value.Bool(h.SetPlayerBool(t, b))
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			b, _ := v.AsBool()
			return value.Bool(h.GetPlayerBool(t, b))
		},
	},
	value.KindInt: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			i, _ := v.AsInt()
			return value.Int(h.SetPlayerInt(t, i))
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			i, _ := v.AsInt()
			return value.Int(h.GetPlayerInt(t, i))
		},
	},
	value.KindFloat: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			f, _ := v.AsFloat()
			return value.Float(h.SetPlayerFloat(t, f))
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			f, _ := v.AsFloat()
			return value.Float(h.GetPlayerFloat(t, f))
		},
	},
	value.KindString: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			s, _ := v.AsString()
			return value.String(h.SetPlayerString(t, s))
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			s, _ := v.AsString()
			return value.String(h.GetPlayerString(t, s))
		},
	},
	value.KindVector3: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			vec, _ := v.AsVector3()
			return value.Vec3(h.SetPlayerVector3(t, vec))
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			vec, _ := v.AsVector3()
			return value.Vec3(h.GetPlayerVector3(t, vec))
		},
	},
	value.KindGeneric: {
		set: func(h *Hooks, t string, v value.Value) value.Value {
			return hook.DispatchChain(h.r, SetPlayerVariable, t, v)
		},
		get: func(h *Hooks, t string, v value.Value) value.Value {
			return hook.DispatchChain(h.r, GetPlayerVariable, t, v)
		},
	},
}

// VariableFunc is the subscriber shape of the generic player-variable
// points.
type VariableFunc = hook.ChainFunc[string, value.Value]

// OnSetPlayerVariable subscribes fn to generic player variable writes.
// A result that is not generic, or whose dynamic type differs from the
// input's, is reported as a fault and discarded.
func OnSetPlayerVariable(r *hook.Registry, owner string, fn VariableFunc) (hook.Subscription, error) {
	return hook.OnChain(r, SetPlayerVariable, owner, checkVariable(fn))
}

// OnGetPlayerVariable subscribes fn to generic player variable reads, with
// the same result checks as OnSetPlayerVariable.
func OnGetPlayerVariable(r *hook.Registry, owner string, fn VariableFunc) (hook.Subscription, error) {
	return hook.OnChain(r, GetPlayerVariable, owner, checkVariable(fn))
}

func checkVariable(fn VariableFunc) VariableFunc {
	if fn == nil {
		return nil
	}
	return func(target string, in value.Value) (value.Value, bool, error) {
		out, override, err := fn(target, in)
		if err != nil || !override {
			return out, override, err
		}
		got, ok := out.AsGeneric()
		if !ok {
			return in, false, fmt.Errorf("%w: %s returned %s value", hook.ErrPayloadType, target, out.Kind())
		}
		want, _ := in.AsGeneric()
		if want != nil && got != nil && reflect.TypeOf(want) != reflect.TypeOf(got) {
			return in, false, fmt.Errorf("%w: %s returned %T, want %T", hook.ErrPayloadType, target, got, want)
		}
		return out, true, nil
	}
}

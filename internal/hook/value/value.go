// Package value defines the tagged union carried by the player-variable
// points.
//
// Host data comes in a small closed set of kinds. Callers branch on Kind
// through an explicit table instead of inspecting Go types at every call
// site; only Of classifies an arbitrary Go value, once, at the boundary.
package value

import (
	"fmt"
	"math"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindVector3
	KindGeneric

	numKinds
)

// NumKinds is the number of defined kinds, for sizing per-kind tables.
const NumKinds = int(numKinds)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVector3:
		return "vector3"
	case KindGeneric:
		return "generic"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Vector3 is a three-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// String formats the vector as (x, y, z).
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Value holds exactly one of the supported kinds.
// The zero Value is Bool(false).
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float32
	s    string
	v    Vector3
	g    any
}

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an int Value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float32) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Vec3 returns a vector Value.
func Vec3(v Vector3) Value { return Value{kind: KindVector3, v: v} }

// Generic returns an opaque Value. It does not reclassify x; use Of for that.
func Generic(x any) Value { return Value{kind: KindGeneric, g: x} }

// Of classifies x into the matching kind. Values of any other type become
// generic.
func Of(x any) Value {
	switch t := x.(type) {
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int64:
		if t >= math.MinInt && t <= math.MaxInt {
			return Int(int(t))
		}
	case int32:
		return Int(int(t))
	case float32:
		return Float(t)
	case float64:
		return Float(float32(t))
	case string:
		return String(t)
	case Vector3:
		return Vec3(t)
	case Value:
		return t
	}
	return Generic(x)
}

// Kind returns the variant held.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the bool and whether v holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the int and whether v holds one.
func (v Value) AsInt() (int, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float and whether v holds one.
func (v Value) AsFloat() (float32, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsVector3 returns the vector and whether v holds one.
func (v Value) AsVector3() (Vector3, bool) { return v.v, v.kind == KindVector3 }

// AsGeneric returns the opaque payload and whether v holds one.
func (v Value) AsGeneric() (any, bool) { return v.g, v.kind == KindGeneric }

// Interface returns the held value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindVector3:
		return v.v
	default:
		return v.g
	}
}

// String formats the held value.
func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}

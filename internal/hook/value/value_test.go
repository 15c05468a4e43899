package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	type custom struct{ N int }

	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{"bool", true, KindBool},
		{"int", 3, KindInt},
		{"int64", int64(4), KindInt},
		{"float32", float32(1.5), KindFloat},
		{"float64", 2.5, KindFloat},
		{"string", "s", KindString},
		{"vector", Vector3{1, 2, 3}, KindVector3},
		{"struct", custom{N: 1}, KindGeneric},
		{"nil", nil, KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Of(tt.in).Kind())
		})
	}
}

func TestOfValuePassthrough(t *testing.T) {
	v := Int(7)
	assert.Equal(t, v, Of(v))
}

func TestAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Bool(true).AsInt()
	assert.False(t, ok)

	vec, ok := Vec3(Vector3{X: 1}).AsVector3()
	assert.True(t, ok)
	assert.Equal(t, float32(1), vec.X)

	g, ok := Generic([]int{1}).AsGeneric()
	assert.True(t, ok)
	assert.Equal(t, []int{1}, g)
}

func TestZeroValue(t *testing.T) {
	var v Value
	assert.Equal(t, KindBool, v.Kind())
	assert.Equal(t, false, v.Interface())
}

func TestString(t *testing.T) {
	assert.Equal(t, "int(3)", Int(3).String())
	assert.Equal(t, "vector3((1, 2, 3))", Vec3(Vector3{1, 2, 3}).String())
	assert.Equal(t, "generic", KindGeneric.String())
}

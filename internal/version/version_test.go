package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modhooks/internal/log"
)

func TestParse(t *testing.T) {
	rec := log.NewRecorder()

	v := Parse("1.4.3.2", rec)
	assert.Equal(t, Info{Major: 1, Minor: 4, Revision: 3, Package: 2}, v)
	assert.Equal(t, 0, rec.Len())
}

func TestParseMalformed(t *testing.T) {
	for _, s := range []string{"bad.version", "", "1.2.3", "1.2.3.4.5", "1.2.x.4", "1..3.4"} {
		t.Run(s, func(t *testing.T) {
			rec := log.NewRecorder()

			v := Parse(s, rec)
			assert.True(t, v.IsZero())
			require.Equal(t, 1, rec.Len())
			assert.Equal(t, 1, rec.Count(log.FaultVersionParse))
			assert.ErrorIs(t, rec.Entries()[0].Err, ErrMalformed)
		})
	}
}

func TestParseNilSink(t *testing.T) {
	assert.NotPanics(t, func() { Parse("nope", nil) })
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "1.5.78.11833-60", Identifier(Info{1, 5, 78, 11833}))
	assert.Equal(t, "0.0.0.0-60", Identifier(Info{}))
}

func TestString(t *testing.T) {
	v, err := Strict(" 1.4.3.2 ")
	require.NoError(t, err)
	assert.Equal(t, "1.4.3.2", v.String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Info
		want int
	}{
		{Info{1, 4, 3, 2}, Info{1, 4, 3, 2}, 0},
		{Info{1, 4, 3, 2}, Info{1, 5, 0, 0}, -1},
		{Info{2, 0, 0, 0}, Info{1, 9, 9, 9}, 1},
		{Info{1, 4, 3, 2}, Info{1, 4, 3, 3}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, -tt.want, tt.b.Compare(tt.a), "%s vs %s", tt.b, tt.a)
	}
}

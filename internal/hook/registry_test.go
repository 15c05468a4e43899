package hook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modhooks/internal/log"
)

var testPoints = []Point{
	{Name: "notify", Policy: PolicyNotify, Payload: "string"},
	{Name: "chain", Policy: PolicyChain, Payload: "int"},
	{Name: "mutate", Policy: PolicyMutate, Payload: "deathFields"},
	{Name: "any", Policy: PolicyAny, Payload: "bool"},
	{Name: "last", Policy: PolicyLastWins, Payload: "int -> string"},
	{Name: "chain_mutate", Policy: PolicyChainMutate, Payload: "int, *int"},
}

func newTestRegistry(t *testing.T) (*Registry, *log.Recorder) {
	t.Helper()
	rec := log.NewRecorder()
	return NewRegistry(WithSink(rec), WithPoints(testPoints...)), rec
}

func noopNotify(string) error { return nil }

func TestRegistryRegisterOrder(t *testing.T) {
	r, _ := newTestRegistry(t)

	a, err := OnNotify(r, "notify", "ext-a", noopNotify)
	require.NoError(t, err)
	b, err := OnNotify(r, "notify", "ext-b", noopNotify)
	require.NoError(t, err)

	subs := r.Subscriptions("notify")
	require.Len(t, subs, 2)
	assert.Equal(t, a.ID, subs[0].ID)
	assert.Equal(t, b.ID, subs[1].ID)
	assert.Less(t, a.Seq, b.Seq)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "ext-a#1", a.String())
}

func TestRegistryRegisterErrors(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := OnNotify(r, "missing", "x", noopNotify)
	assert.ErrorIs(t, err, ErrUnknownPoint)

	_, err = OnNotify(r, "chain", "x", noopNotify)
	assert.ErrorIs(t, err, ErrPolicyMismatch)

	_, err = OnNotify[string](r, "notify", "x", nil)
	assert.ErrorIs(t, err, ErrNilSubscriber)

	assert.Zero(t, r.Count("notify"))
}

func TestRegistryUnregister(t *testing.T) {
	r, _ := newTestRegistry(t)

	a, _ := OnNotify(r, "notify", "ext-a", noopNotify)
	b, _ := OnNotify(r, "notify", "ext-b", noopNotify)
	c, _ := OnAny(r, "any", "ext-a", func() (bool, error) { return true, nil })

	assert.True(t, r.Unregister(a))
	assert.False(t, r.Unregister(a))
	assert.Equal(t, []Subscription{b}, r.Subscriptions("notify"))

	assert.True(t, r.UnregisterID(c.ID))
	assert.False(t, r.UnregisterID(c.ID))
	assert.Zero(t, r.Count("any"))
}

func TestRegistryUnregisterOwner(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, _ = OnNotify(r, "notify", "ext-a", noopNotify)
	keep, _ := OnNotify(r, "notify", "ext-b", noopNotify)
	_, _ = OnAny(r, "any", "ext-a", func() (bool, error) { return true, nil })

	assert.Equal(t, 2, r.UnregisterOwner("ext-a"))
	assert.Equal(t, []Subscription{keep}, r.Subscriptions("notify"))
	assert.Zero(t, r.Count("any"))
	assert.Zero(t, r.UnregisterOwner("ext-a"))
}

func TestRegistryDispatchWiringBugsPanic(t *testing.T) {
	r, _ := newTestRegistry(t)

	assertPanicIs := func(t *testing.T, target error, fn func()) {
		t.Helper()
		defer func() {
			v := recover()
			require.NotNil(t, v, "expected panic")
			err, ok := v.(error)
			require.True(t, ok, "panic value %v is not an error", v)
			assert.ErrorIs(t, err, target)
		}()
		fn()
	}

	assertPanicIs(t, ErrUnknownPoint, func() { DispatchNotify(r, "missing", "x") })
	assertPanicIs(t, ErrPolicyMismatch, func() { DispatchAny(r, "notify") })
}

func TestRegistryDefineDuplicatePanics(t *testing.T) {
	r, _ := newTestRegistry(t)
	assert.Panics(t, func() {
		r.Define(Point{Name: "notify", Policy: PolicyNotify})
	})
}

func TestRegistryPoints(t *testing.T) {
	r, _ := newTestRegistry(t)

	points := r.Points()
	require.Len(t, points, len(testPoints))
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Name, points[i].Name)
	}

	p, ok := r.Point("chain")
	require.True(t, ok)
	assert.Equal(t, PolicyChain, p.Policy)
}

func TestRegistryClear(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, _ = OnNotify(r, "notify", "a", noopNotify)

	r.Clear()
	assert.Zero(t, r.Count("notify"))
	_, ok := r.Point("notify")
	assert.True(t, ok, "catalog survives Clear")
}

func TestRegistryStats(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, _ = OnNotify(r, "notify", "ok", noopNotify)
	_, _ = OnNotify(r, "notify", "err", func(string) error { return errors.New("nope") })
	_, _ = OnNotify(r, "notify", "panic", func(string) error { panic("boom") })

	DispatchNotify(r, "notify", "payload")

	s := r.Stats()
	assert.Equal(t, uint64(1), s.Dispatches)
	assert.Equal(t, uint64(3), s.Invocations)
	assert.Equal(t, uint64(2), s.Faults)
	assert.Equal(t, uint64(1), s.Panics)

	r.ResetStats()
	assert.Zero(t, r.Stats().Invocations)
}

func TestRegistryFaultErrors(t *testing.T) {
	r, rec := newTestRegistry(t)
	sentinel := errors.New("nope")
	_, _ = OnNotify(r, "notify", "err", func(string) error { return sentinel })
	_, _ = OnNotify(r, "notify", "panic", func(string) error { panic("boom") })

	DispatchNotify(r, "notify", "payload")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, log.FaultSubscriber, e.Kind)
	}

	var fe *FaultError
	require.ErrorAs(t, entries[0].Err, &fe)
	assert.ErrorIs(t, fe, sentinel)
	assert.Equal(t, "notify", fe.Point)
	assert.Equal(t, "err", fe.Subscription.Owner)

	var pe *PanicError
	require.ErrorAs(t, entries[1].Err, &pe)
	assert.ErrorIs(t, pe, ErrSubscriberPanic)
	assert.Equal(t, "boom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

type panickingSink struct{ log.Recorder }

func (s *panickingSink) Fault(log.Fault, string, error, ...any) { panic("sink down") }

func TestRegistrySinkPanicContained(t *testing.T) {
	r := NewRegistry(WithSink(&panickingSink{}), WithPoints(testPoints...))
	_, _ = OnChain(r, "chain", "bad", func(_ NoArgs, v int) (int, bool, error) { return 0, true, errors.New("x") })
	_, _ = OnChain(r, "chain", "good", func(_ NoArgs, v int) (int, bool, error) { return v + 1, true, nil })

	assert.Equal(t, 2, DispatchChain(r, "chain", NoArgs{}, 1))
}

package hook

import "fmt"

// NoArgs is the argument type of points that carry no read-only inputs.
type NoArgs struct{}

// Subscriber function shapes, one per policy. A non-nil error (or a panic)
// discards that subscriber's contribution for the current pass.
type (
	// NotifyFunc observes a payload.
	NotifyFunc[P any] func(payload P) error

	// ChainFunc receives the read-only args of the point and the value left
	// by the previous subscriber. It returns the new value and whether it
	// overrides; when override is false the value is left unchanged.
	ChainFunc[A, T any] func(args A, value T) (next T, override bool, err error)

	// MutateFunc may change any subset of fields. It sees the values left by
	// earlier subscribers.
	MutateFunc[A, F any] func(args A, fields *F) error

	// AnyFunc votes for a boolean point.
	AnyFunc func() (bool, error)

	// LastWinsFunc returns a result that replaces the previous one
	// unconditionally.
	LastWinsFunc[I, R any] func(input I) (R, error)

	// ChainMutateFunc chains value and mutates fields in one call.
	ChainMutateFunc[A, T, F any] func(args A, value T, fields *F) (next T, override bool, err error)
)

// OnNotify registers fn on a notify point.
func OnNotify[P any](r *Registry, point, owner string, fn NotifyFunc[P]) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyNotify, fn)
}

// OnChain registers fn on a chain point.
func OnChain[A, T any](r *Registry, point, owner string, fn ChainFunc[A, T]) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyChain, fn)
}

// OnMutate registers fn on a mutate point.
func OnMutate[A, F any](r *Registry, point, owner string, fn MutateFunc[A, F]) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyMutate, fn)
}

// OnAny registers fn on a boolean OR point.
func OnAny(r *Registry, point, owner string, fn AnyFunc) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyAny, fn)
}

// OnLastWins registers fn on a last-wins point.
func OnLastWins[I, R any](r *Registry, point, owner string, fn LastWinsFunc[I, R]) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyLastWins, fn)
}

// OnChainMutate registers fn on a chain-mutate point.
func OnChainMutate[A, T, F any](r *Registry, point, owner string, fn ChainMutateFunc[A, T, F]) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilSubscriber
	}
	return r.register(point, owner, PolicyChainMutate, fn)
}

// DispatchNotify calls every subscriber of point with payload.
func DispatchNotify[P any](r *Registry, point string, payload P) {
	subs := r.snapshot(point, PolicyNotify)
	r.trace(point, len(subs))

	for _, e := range subs {
		fn, ok := e.fn.(NotifyFunc[P])
		if !ok {
			r.mismatch(point, e, typeName[NotifyFunc[P]]())
			continue
		}
		r.call(point, e, func() error { return fn(payload) })
	}
}

// DispatchChain threads value through every subscriber of point and returns
// the final value. A failing subscriber is skipped: the next one sees the
// value as it was before the failure.
func DispatchChain[A, T any](r *Registry, point string, args A, value T) T {
	subs := r.snapshot(point, PolicyChain)
	r.trace(point, len(subs))

	for _, e := range subs {
		fn, ok := e.fn.(ChainFunc[A, T])
		if !ok {
			r.mismatch(point, e, typeName[ChainFunc[A, T]]())
			continue
		}

		var next T
		var override bool
		if !r.call(point, e, func() (err error) {
			next, override, err = fn(args, value)
			return err
		}) {
			continue
		}
		if override {
			value = next
		}
	}
	return value
}

// DispatchMutate lets every subscriber of point edit fields in place. Writes
// made by a subscriber that fails are rolled back to the values it was
// given. The rollback is a shallow copy of F.
func DispatchMutate[A, F any](r *Registry, point string, args A, fields *F) {
	subs := r.snapshot(point, PolicyMutate)
	r.trace(point, len(subs))

	for _, e := range subs {
		fn, ok := e.fn.(MutateFunc[A, F])
		if !ok {
			r.mismatch(point, e, typeName[MutateFunc[A, F]]())
			continue
		}

		saved := *fields
		if !r.call(point, e, func() error { return fn(args, fields) }) {
			*fields = saved
		}
	}
}

// DispatchAny ORs the votes of every subscriber of point, starting from
// false. Failing subscribers do not vote.
func DispatchAny(r *Registry, point string) bool {
	subs := r.snapshot(point, PolicyAny)
	r.trace(point, len(subs))

	acc := false
	for _, e := range subs {
		fn, ok := e.fn.(AnyFunc)
		if !ok {
			r.mismatch(point, e, typeName[AnyFunc]())
			continue
		}

		var vote bool
		if r.call(point, e, func() (err error) {
			vote, err = fn()
			return err
		}) {
			acc = acc || vote
		}
	}
	return acc
}

// DispatchLastWins returns the result of the last subscriber of point that
// returned without error. Every successful call overwrites the result,
// including one that returns the "no override" value; def stands only when
// no subscriber succeeded.
func DispatchLastWins[I, R any](r *Registry, point string, input I, def R) R {
	subs := r.snapshot(point, PolicyLastWins)
	r.trace(point, len(subs))

	result := def
	for _, e := range subs {
		fn, ok := e.fn.(LastWinsFunc[I, R])
		if !ok {
			r.mismatch(point, e, typeName[LastWinsFunc[I, R]]())
			continue
		}

		var res R
		if r.call(point, e, func() (err error) {
			res, err = fn(input)
			return err
		}) {
			result = res
		}
	}
	return result
}

// DispatchChainMutate applies the chain rule to value and the mutate rule to
// fields in a single pass. On failure both value and fields revert to what
// the failing subscriber was given.
func DispatchChainMutate[A, T, F any](r *Registry, point string, args A, value T, fields *F) T {
	subs := r.snapshot(point, PolicyChainMutate)
	r.trace(point, len(subs))

	for _, e := range subs {
		fn, ok := e.fn.(ChainMutateFunc[A, T, F])
		if !ok {
			r.mismatch(point, e, typeName[ChainMutateFunc[A, T, F]]())
			continue
		}

		saved := *fields
		var next T
		var override bool
		if !r.call(point, e, func() (err error) {
			next, override, err = fn(args, value, fields)
			return err
		}) {
			*fields = saved
			continue
		}
		if override {
			value = next
		}
	}
	return value
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

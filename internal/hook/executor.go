package hook

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/dshills/modhooks/internal/log"
)

// call runs one subscriber behind a fault boundary. It returns true when the
// subscriber returned without error or panic; on false the caller must
// discard the subscriber's contribution.
func (r *Registry) call(point string, e entry, fn func() error) (ok bool) {
	r.stats.invocations.Add(1)
	start := time.Now()

	defer func() {
		r.stats.totalTimeNs.Add(time.Since(start).Nanoseconds())

		if v := recover(); v != nil {
			ok = false
			r.stats.panics.Add(1)
			r.report(&PanicError{
				Point:        point,
				Subscription: e.sub,
				Value:        v,
				Stack:        debug.Stack(),
			}, e.sub)
		}
	}()

	if err := fn(); err != nil {
		r.report(&FaultError{Point: point, Subscription: e.sub, Err: err}, e.sub)
		return false
	}
	return true
}

// mismatch reports a subscriber whose function type does not fit the
// payload the point is dispatched with.
func (r *Registry) mismatch(point string, e entry, want string) {
	r.stats.invocations.Add(1)
	r.report(&FaultError{
		Point:        point,
		Subscription: e.sub,
		Err:          fmt.Errorf("%w: have %T, want %s", ErrPayloadType, e.fn, want),
	}, e.sub)
}

// report hands a subscriber fault to the sink. A panicking sink must not
// take the dispatch loop down with it.
func (r *Registry) report(err error, sub Subscription) {
	r.stats.faults.Add(1)
	defer func() {
		_ = recover()
	}()
	r.sink.Fault(log.FaultSubscriber, "subscriber failed", err,
		"point", sub.Point,
		"owner", sub.Owner,
		"seq", sub.Seq,
	)
}

// trace logs a dispatch at fine level when the sink supports it.
func (r *Registry) trace(point string, n int) {
	r.stats.dispatches.Add(1)
	if f, ok := r.sink.(interface{ Fine(string, ...any) }); ok {
		f.Fine("dispatch", "point", point, "subscribers", n)
	}
}

// stats holds dispatch counters.
type stats struct {
	dispatches  atomic.Uint64
	invocations atomic.Uint64
	faults      atomic.Uint64
	panics      atomic.Uint64
	totalTimeNs atomic.Int64
}

// Stats contains registry counters.
type Stats struct {
	// Dispatches is the number of dispatch passes started.
	Dispatches uint64

	// Invocations is the number of subscriber calls attempted.
	Invocations uint64

	// Faults is the number of subscriber calls whose contribution was
	// discarded, panics included.
	Faults uint64

	// Panics is the number of subscriber calls that panicked.
	Panics uint64

	// TotalDuration is the cumulative time spent in subscribers.
	TotalDuration time.Duration
}

// Stats returns a snapshot of the counters. Values are read independently
// and may be slightly inconsistent under concurrent dispatch.
func (r *Registry) Stats() Stats {
	return Stats{
		Dispatches:    r.stats.dispatches.Load(),
		Invocations:   r.stats.invocations.Load(),
		Faults:        r.stats.faults.Load(),
		Panics:        r.stats.panics.Load(),
		TotalDuration: time.Duration(r.stats.totalTimeNs.Load()),
	}
}

// ResetStats zeroes the counters.
func (r *Registry) ResetStats() {
	r.stats.dispatches.Store(0)
	r.stats.invocations.Store(0)
	r.stats.faults.Store(0)
	r.stats.panics.Store(0)
	r.stats.totalTimeNs.Store(0)
}

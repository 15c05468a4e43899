package hook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/modhooks/internal/log"
)

// Registry holds the catalog of points and the ordered subscriber list for
// each of them.
//
// Registration and unregistration may happen at any time, including from
// inside a subscriber. A dispatch pass iterates a copy of the list taken
// when the pass starts, so changes only affect passes that begin afterwards.
// The mutex guards the lists only; subscribers never run under it.
type Registry struct {
	mu     sync.Mutex
	points map[string]Point
	subs   map[string][]entry
	seq    uint64

	sink  log.Sink
	stats stats
}

// Option configures a Registry.
type Option func(*Registry)

// WithSink sets the fault sink. The default discards everything.
func WithSink(s log.Sink) Option {
	return func(r *Registry) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithPoints defines catalog points at construction.
func WithPoints(points ...Point) Option {
	return func(r *Registry) {
		for _, p := range points {
			r.define(p)
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		points: make(map[string]Point),
		subs:   make(map[string][]entry),
		sink:   log.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define adds points to the catalog. Defining a name twice panics.
func (r *Registry) Define(points ...Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range points {
		r.define(p)
	}
}

func (r *Registry) define(p Point) {
	if p.Name == "" {
		panic(fmt.Errorf("%w: empty name", ErrUnknownPoint))
	}
	if _, exists := r.points[p.Name]; exists {
		wiringPanic(ErrDuplicatePoint, p.Name, "")
	}
	r.points[p.Name] = p
}

// Point returns the catalog entry for name.
func (r *Registry) Point(name string) (Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[name]
	return p, ok
}

// Points returns the catalog sorted by name.
func (r *Registry) Points() []Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Point, 0, len(r.points))
	for _, p := range r.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sink returns the fault sink.
func (r *Registry) Sink() log.Sink {
	return r.sink
}

// register appends fn to the point's list. Extension-facing mistakes
// (unknown point, wrong policy, nil function) are returned as errors.
func (r *Registry) register(point, owner string, policy Policy, fn any) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.points[point]
	if !ok {
		return Subscription{}, fmt.Errorf("%w: %s", ErrUnknownPoint, point)
	}
	if p.Policy != policy {
		return Subscription{}, fmt.Errorf("%w: %s is %s, not %s", ErrPolicyMismatch, point, p.Policy, policy)
	}

	r.seq++
	sub := Subscription{
		ID:    uuid.NewString(),
		Point: point,
		Owner: owner,
		Seq:   r.seq,
	}
	r.subs[point] = append(r.subs[point], entry{sub: sub, fn: fn})
	return sub, nil
}

// Unregister removes the subscription from its point.
// Returns false if it was not registered.
func (r *Registry) Unregister(sub Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(sub.Point, func(e entry) bool { return e.sub.ID == sub.ID })
}

// UnregisterID removes a subscription by its ID.
func (r *Registry) UnregisterID(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for point, list := range r.subs {
		for _, e := range list {
			if e.sub.ID == id {
				return r.removeLocked(point, func(e entry) bool { return e.sub.ID == id })
			}
		}
	}
	return false
}

// UnregisterOwner removes every subscription registered by owner and
// returns how many were removed.
func (r *Registry) UnregisterOwner(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for point, list := range r.subs {
		kept := make([]entry, 0, len(list))
		for _, e := range list {
			if e.sub.Owner == owner {
				count++
				continue
			}
			kept = append(kept, e)
		}
		r.setLocked(point, kept)
	}
	return count
}

// removeLocked drops the first entry matching match.
func (r *Registry) removeLocked(point string, match func(entry) bool) bool {
	list := r.subs[point]
	for i, e := range list {
		if match(e) {
			r.setLocked(point, append(list[:i], list[i+1:]...))
			return true
		}
	}
	return false
}

func (r *Registry) setLocked(point string, list []entry) {
	if len(list) == 0 {
		delete(r.subs, point)
		return
	}
	r.subs[point] = list
}

// Count returns the number of subscribers on point.
func (r *Registry) Count(point string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[point])
}

// Subscriptions returns the subscriptions on point in dispatch order.
func (r *Registry) Subscriptions(point string) []Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[point]
	out := make([]Subscription, len(list))
	for i, e := range list {
		out[i] = e.sub
	}
	return out
}

// Clear removes every subscriber. The catalog is kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[string][]entry)
}

// snapshot returns a copy of point's subscriber list after checking the
// point exists and is bound to policy. Both checks guard against wiring
// bugs in the host glue and panic.
func (r *Registry) snapshot(point string, policy Policy) []entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.points[point]
	if !ok {
		wiringPanic(ErrUnknownPoint, point, "")
	}
	if p.Policy != policy {
		wiringPanic(ErrPolicyMismatch, point, fmt.Sprintf("bound to %s, dispatched as %s", p.Policy, policy))
	}

	list := r.subs[point]
	if len(list) == 0 {
		return nil
	}
	out := make([]entry, len(list))
	copy(out, list)
	return out
}

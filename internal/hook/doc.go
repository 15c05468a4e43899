// Package hook is the dispatch engine for extension hooks.
//
// A Registry holds a fixed catalog of Points and, for each point, the
// subscribers extensions registered on it, in registration order. The host
// reaches a point and calls the Dispatch function matching the point's
// Policy; the registry runs the subscribers synchronously on the calling
// goroutine and returns the combined result.
//
// # Policies
//
//   - PolicyNotify: observe a payload, no result.
//   - PolicyChain: each subscriber sees the previous one's value and may
//     override it.
//   - PolicyMutate: subscribers edit shared fields in place.
//   - PolicyAny: boolean OR over all votes, seeded with false.
//   - PolicyLastWins: the last successful result wins, even if it is the
//     "no override" value.
//   - PolicyChainMutate: chain and mutate in the same pass.
//
// # Fault isolation
//
// Every subscriber call runs behind a boundary that recovers panics and
// catches returned errors. The fault is reported to the registry's
// log.Sink, the subscriber's contribution is discarded, and the pass
// continues with the value as it was before that subscriber ran. Faults
// never reach the caller.
//
// Wiring bugs in the host glue are different: dispatching a point that is
// not in the catalog, or through the wrong policy, panics.
//
// # Snapshots
//
// A pass iterates a copy of the subscriber list taken when it starts.
// Subscribers registered or removed during a pass, including by a running
// subscriber, take effect from the next pass.
//
// # Usage
//
//	r := hook.NewRegistry(hook.WithSink(sink), hook.WithPoints(
//		hook.Point{Name: "soul_gain", Policy: hook.PolicyChain},
//	))
//
//	hook.OnChain(r, "soul_gain", "doubler", func(_ hook.NoArgs, n int) (int, bool, error) {
//		return n * 2, true, nil
//	})
//
//	gained := hook.DispatchChain(r, "soul_gain", hook.NoArgs{}, 11)
package hook

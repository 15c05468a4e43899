package hook

import "fmt"

// Policy selects how a point invokes its subscribers and combines their
// results. Policies never reorder subscribers.
type Policy uint8

const (
	// PolicyNotify calls every subscriber with the payload; results are ignored.
	PolicyNotify Policy = iota + 1

	// PolicyChain feeds each subscriber the value left by the previous one.
	// A subscriber may decline to override.
	PolicyChain

	// PolicyMutate hands every subscriber the same mutable fields.
	PolicyMutate

	// PolicyAny ORs boolean results, seeded with false.
	PolicyAny

	// PolicyLastWins keeps the result of the last subscriber that returned
	// successfully, whatever that result is.
	PolicyLastWins

	// PolicyChainMutate chains a primary value and mutates auxiliary fields
	// in the same pass.
	PolicyChainMutate
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNotify:
		return "notify"
	case PolicyChain:
		return "chain"
	case PolicyMutate:
		return "mutate"
	case PolicyAny:
		return "any"
	case PolicyLastWins:
		return "last-wins"
	case PolicyChainMutate:
		return "chain-mutate"
	default:
		return fmt.Sprintf("policy(%d)", p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Point is one named interception point. Points are defined at build time
// and never change while the registry is live.
type Point struct {
	// Name is the unique identifier, e.g. "take_health".
	Name string `yaml:"name"`

	// Policy is the dispatch policy bound to the point.
	Policy Policy `yaml:"policy"`

	// Payload describes the payload shape for diagnostics.
	Payload string `yaml:"payload"`

	// Doc is a one-line description.
	Doc string `yaml:"doc,omitempty"`
}

// String returns the point name.
func (p Point) String() string { return p.Name }

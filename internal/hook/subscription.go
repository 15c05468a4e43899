package hook

import "fmt"

// Subscription is the handle returned by registration.
//
// Seq is the registration order and is what orders dispatch. ID is an opaque
// unique token for unregistration from outside Go (e.g. Lua extensions).
type Subscription struct {
	ID    string
	Point string
	Owner string
	Seq   uint64
}

// String returns a compact description for logs.
func (s Subscription) String() string {
	if s.Owner == "" {
		return fmt.Sprintf("#%d", s.Seq)
	}
	return fmt.Sprintf("%s#%d", s.Owner, s.Seq)
}

// IsZero reports whether s is the zero Subscription.
func (s Subscription) IsZero() bool {
	return s.ID == "" && s.Seq == 0
}

// entry is one registered subscriber.
type entry struct {
	sub Subscription
	fn  any
}

package hook

import (
	"errors"
	"fmt"
)

// Sentinel errors for the hook package.
var (
	// ErrUnknownPoint is raised when a point is not in the registry's catalog.
	ErrUnknownPoint = errors.New("unknown dispatch point")

	// ErrPolicyMismatch is raised when a point is registered or dispatched
	// through a policy other than the one it is bound to.
	ErrPolicyMismatch = errors.New("dispatch policy mismatch")

	// ErrDuplicatePoint is raised when a catalog defines a name twice.
	ErrDuplicatePoint = errors.New("dispatch point already defined")

	// ErrNilSubscriber is returned when a nil function is registered.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")

	// ErrSubscriberPanic matches PanicError values.
	ErrSubscriberPanic = errors.New("subscriber panicked")

	// ErrPayloadType is reported when a subscriber was registered for a
	// different payload type than the point is dispatched with.
	ErrPayloadType = errors.New("subscriber payload type mismatch")
)

// FaultError wraps an error returned by a subscriber.
type FaultError struct {
	// Point is the dispatch point being run.
	Point string
	// Subscription identifies the failing subscriber.
	Subscription Subscription
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FaultError) Error() string {
	return fmt.Sprintf("subscriber %s on %s failed: %v", e.Subscription, e.Point, e.Err)
}

// Unwrap returns the underlying error.
func (e *FaultError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic recovered from a subscriber.
type PanicError struct {
	Point        string
	Subscription Subscription
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("subscriber %s on %s panicked: %v", e.Subscription, e.Point, e.Value)
}

// Is allows errors.Is to match PanicError with ErrSubscriberPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrSubscriberPanic
}

// wiringPanic fails fast on a core wiring bug.
func wiringPanic(err error, point string, detail string) {
	if detail == "" {
		panic(fmt.Errorf("%w: %s", err, point))
	}
	panic(fmt.Errorf("%w: %s (%s)", err, point, detail))
}

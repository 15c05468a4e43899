package runtime

import "errors"

// Runtime errors.
var (
	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("runtime already started")

	// ErrNotStarted indicates an operation that needs a started runtime.
	ErrNotStarted = errors.New("runtime not started")

	// ErrUnresolved indicates a dependency nobody provides.
	ErrUnresolved = errors.New("unresolved dependency")

	// ErrExtensionLoaded indicates an extension name that is already loaded.
	ErrExtensionLoaded = errors.New("extension already loaded")
)

// InitError represents a startup step failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

package luaext

import "errors"

var (
	// ErrStateClosed is returned when calling into a closed extension.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoAdapter indicates a point that Lua functions cannot subscribe to.
	ErrNoAdapter = errors.New("point has no lua adapter")

	// ErrResultType indicates a Lua result that cannot become the point's
	// value type.
	ErrResultType = errors.New("lua result has wrong type")
)

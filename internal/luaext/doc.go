// Package luaext runs extensions written in Lua and turns their functions
// into hook subscribers.
//
// Each extension gets its own sandboxed gopher-lua state. The io, os,
// debug and package libraries are not opened, and dofile, loadfile, load
// and loadstring are removed. A script subscribes through the hooks
// module:
//
//	VERSION = "1.0"
//
//	local id = hooks.on("soul_gain", function(amount)
//	    return amount * 2
//	end)
//
//	hooks.on("language_get", function(key, current)
//	    if key.key == "TITLE" then return "Modded" end
//	    -- nil leaves the value unchanged
//	end)
//
//	hooks.off(id)
//
// How a Lua function's results are read depends on the point's policy:
//
//   - notify: results are ignored.
//   - chain: nil keeps the current value, anything else replaces it.
//   - any: the result is tested for truth.
//   - last wins: the result replaces the previous answer; nil is the
//     zero value, which means "no override".
//
// A Lua runtime error, a result of the wrong type or a call that runs past
// the execution timeout is a subscriber fault: the registry reports it and
// discards the contribution.
package luaext

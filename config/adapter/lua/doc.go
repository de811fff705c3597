// Package lua provides an adapter for configuration written as Lua code.
//
// A configuration file is a script that returns a table:
//
//	local base = "/srv/app"
//
//	return {
//	    name = "app",
//	    paths = { data = base .. "/data", logs = base .. "/logs" },
//	    workers = 2 * 4,
//	}
//
// Decoding runs the script with github.com/yuin/gopher-lua in a fresh
// interpreter that only has the base, table, string and math libraries, and
// with a time limit. Tables whose keys are exactly 1..n become lists, other
// tables become maps in insertion order. Whole numbers become integers.
//
// Encoding writes a "return { ... }" chunk that evaluates back to the tree.
package lua

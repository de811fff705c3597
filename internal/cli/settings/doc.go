// Package settings resolves the command-line tool configuration from
// HJARTA_* environment variables, command-line flags and defaults, in that
// order of increasing precedence for the first two.
//
// Boolean flags can only switch a setting on: a false flag is indistinguishable
// from an unset one.
package settings

// Package toml provides a TOML adapter for the config package, built on
// github.com/pelletier/go-toml/v2.
//
// TOML tables are decoded through Go maps, which have no order, so decoded
// keys come out sorted. TOML has no null: null values are skipped on encode.
// Dates and times are decoded as strings.
package toml

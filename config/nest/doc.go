// Package nest converts between flat, delimiter-keyed configuration and nested trees.
//
// Decoding goes through a Builder: keys such as "db.primary.host" and
// sections such as [db.primary] are expanded into chains of nested maps.
// Encoding goes through a Flattener, which walks a tree and emits
// "path = value" lines, grouped by top-level section.
//
// Errors are reported through three sentinels, to be checked with errors.Is:
//   - ErrInvalidKey: a key path with an empty segment (".a", "a.", "a..b")
//   - ErrKeyConflict: a sub-key requested under a key that holds a scalar
//   - ErrUnsupportedValue: a value that cannot be written (e.g. a string with a double quote)
//
// Usage:
//
//	builder := nest.NewBuilder(nest.WithSeparator("."))
//	nested, err := builder.Build(flat)
//
//	flattener := nest.NewFlattener(nest.WithSeparator("."))
//	text, err := flattener.Flatten(nested)
package nest

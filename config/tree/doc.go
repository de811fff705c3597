// Package tree provides the in-memory representation of a configuration document.
//
// A document is an ordered mapping from string keys to values. Values form a
// closed set of kinds:
//   - String, Int, Float, Bool: scalar leaves
//   - List: a sequence of values
//   - *Map: a nested, insertion-ordered mapping
//
// A nil Value stands for an absent (null) value.
//
// Insertion order of a Map is significant: encoders emit keys in the order
// they were first set, and overwriting a key keeps its original position.
package tree

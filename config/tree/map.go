package tree

import (
	"iter"
	"slices"
)

// Map is an insertion-ordered mapping from string keys to values.
// The zero value is not usable; create maps with NewMap.
type Map struct {
	keys    []string
	entries map[string]Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{
		keys:    nil,
		entries: make(map[string]Value),
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]

	return v, ok
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value Value) {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.entries[key] = value
}

// With sets key and returns m, for building maps inline.
func (m *Map) With(key string, value Value) *Map {
	m.Set(key, value)

	return m
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	if _, exists := m.entries[key]; !exists {
		return
	}

	delete(m.entries, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range m.keys {
			if !yield(key, m.entries[key]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	out := NewMap()

	for key, v := range m.All() {
		out.Set(key, Clone(v))
	}

	return out
}

// Lookup walks nested maps along path and returns the value found at its end.
// An empty path returns the map itself.
func (m *Map) Lookup(path ...string) (Value, bool) {
	var current Value = m

	for _, segment := range path {
		node, ok := current.(*Map)
		if !ok {
			return nil, false
		}

		current, ok = node.Get(segment)
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch typed := v.(type) {
	case *Map:
		return typed.Clone()
	case List:
		out := make(List, len(typed))
		for i, item := range typed {
			out[i] = Clone(item)
		}

		return out
	default:
		return v
	}
}

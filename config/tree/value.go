package tree

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ErrUnsupportedType is returned by FromAny for Go values that have no tree representation.
var ErrUnsupportedType = errors.New("unsupported value type")

// Value is a node of a configuration tree.
// The set of implementations is closed: String, Int, Float, Bool, List and *Map.
type Value interface {
	value()
}

// String is a string scalar.
type String string

// Int is an integer scalar.
type Int int64

// Float is a floating point scalar.
type Float float64

// Bool is a boolean scalar.
type Bool bool

// List is an ordered sequence of values.
type List []Value

func (String) value() {}
func (Int) value()    {}
func (Float) value()  {}
func (Bool) value()   {}
func (List) value()   {}
func (*Map) value()   {}

// IsContainer reports whether v is a *Map or a List.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Map, List:
		return true
	default:
		return false
	}
}

// Kind returns a short name of the value kind, used in error messages.
func Kind(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case List:
		return "list"
	case *Map:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// FromAny converts a generic decoded Go value into a tree Value.
// Go maps carry no order, so their keys are inserted in sorted order.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(typed), nil
	case int8:
		return Int(typed), nil
	case int16:
		return Int(typed), nil
	case int32:
		return Int(typed), nil
	case int64:
		return Int(typed), nil
	case uint:
		return fromUnsigned(uint64(typed))
	case uint8:
		return Int(typed), nil
	case uint16:
		return Int(typed), nil
	case uint32:
		return Int(typed), nil
	case uint64:
		return fromUnsigned(typed)
	case float32:
		return Float(typed), nil
	case float64:
		return Float(typed), nil
	case []any:
		list := make(List, 0, len(typed))

		for i, item := range typed {
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}

			list = append(list, converted)
		}

		return list, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		result := NewMap()

		for _, key := range keys {
			converted, err := FromAny(typed[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}

			result.Set(key, converted)
		}

		return result, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
	}
}

func fromUnsigned(n uint64) (Value, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedType, n)
	}

	return Int(int64(n)), nil
}

// ToAny converts a tree Value into plain Go values: maps become map[string]any,
// lists become []any and scalars their underlying Go type.
func ToAny(v Value) any {
	switch typed := v.(type) {
	case String:
		return string(typed)
	case Int:
		return int64(typed)
	case Float:
		return float64(typed)
	case Bool:
		return bool(typed)
	case List:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, ToAny(item))
		}

		return out
	case *Map:
		out := make(map[string]any, typed.Len())
		for key, item := range typed.All() {
			out[key] = ToAny(item)
		}

		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same data. Map key order is ignored.
func Equal(a, b Value) bool {
	switch left := a.(type) {
	case *Map:
		right, ok := b.(*Map)
		if !ok || left.Len() != right.Len() {
			return false
		}

		for key, item := range left.All() {
			other, found := right.Get(key)
			if !found || !Equal(item, other) {
				return false
			}
		}

		return true
	case List:
		right, ok := b.(List)
		if !ok {
			return false
		}

		return slices.EqualFunc(left, right, Equal)
	default:
		return a == b
	}
}

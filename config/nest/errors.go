package nest

import "errors"

// ErrInvalidKey is returned when a key path contains an empty segment.
var ErrInvalidKey = errors.New("invalid key")

// ErrKeyConflict is returned when a sub-key is requested under a key that already holds a scalar.
var ErrKeyConflict = errors.New("key conflict")

// ErrUnsupportedValue is returned when a value cannot be encoded.
var ErrUnsupportedValue = errors.New("unsupported value")

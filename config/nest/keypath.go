package nest

import (
	"fmt"
	"strings"
)

// DefaultSeparator separates nesting levels in keys and section names.
const DefaultSeparator = "."

// Split cuts key at the first occurrence of separator.
// It returns nested == false when the separator does not occur in key.
// An empty head or rest fails with ErrInvalidKey.
func Split(key, separator string) (head, rest string, nested bool, err error) {
	if separator == "" {
		return key, "", false, nil
	}

	head, rest, nested = strings.Cut(key, separator)
	if !nested {
		return key, "", false, nil
	}

	if head == "" || rest == "" {
		return "", "", false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return head, rest, true, nil
}

// Segments splits key into all of its path segments, rejecting empty ones.
func Segments(key, separator string) ([]string, error) {
	var segments []string

	remaining := key

	for {
		head, rest, nested, err := Split(remaining, separator)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}

		if !nested {
			return append(segments, remaining), nil
		}

		segments = append(segments, head)
		remaining = rest
	}
}

package nest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-conf/config/tree"
)

// EncodeValue renders a scalar as it appears on the right-hand side of a line.
// Numbers and booleans are written bare, strings double-quoted and nil as "".
// Strings containing a double quote cannot be written, since there is no escaping.
func EncodeValue(v tree.Value) (string, error) {
	switch typed := v.(type) {
	case nil:
		return `""`, nil
	case tree.Int:
		return strconv.FormatInt(int64(typed), 10), nil
	case tree.Float:
		return encodeFloat(float64(typed))
	case tree.Bool:
		return strconv.FormatBool(bool(typed)), nil
	case tree.String:
		if strings.Contains(string(typed), `"`) {
			return "", fmt.Errorf("%w: value %q contains a double quote", ErrUnsupportedValue, string(typed))
		}

		return `"` + string(typed) + `"`, nil
	default:
		return "", fmt.Errorf("%w: %s is not a scalar", ErrUnsupportedValue, tree.Kind(v))
	}
}

// encodeFloat keeps a decimal point so the value reads back as a float.
func encodeFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: float %v", ErrUnsupportedValue, f)
	}

	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}

	return out, nil
}

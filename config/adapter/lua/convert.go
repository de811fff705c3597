package lua

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/0xalexb/hjarta-conf/config/nest"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

const indentUnit = "    "

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

//nolint:gochecknoglobals // read-only keyword set.
var keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// fromTable converts a table into a List when its keys are exactly 1..n,
// and into a Map otherwise. Entries are visited with Next, which follows
// insertion order for non-sequence keys.
func fromTable(table *lua.LTable, visited map[*lua.LTable]bool) (tree.Value, error) {
	if visited[table] {
		return nil, fmt.Errorf("%w: circular table reference", nest.ErrUnsupportedValue)
	}

	visited[table] = true
	defer delete(visited, table)

	var (
		keys   []lua.LValue
		values []lua.LValue
	)

	for key, value := table.Next(lua.LNil); key != lua.LNil; key, value = table.Next(key) {
		keys = append(keys, key)
		values = append(values, value)
	}

	if isSequence(keys) {
		list := make(tree.List, 0, len(values))

		for i, raw := range values {
			value, err := fromLua(raw, visited)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i+1, err)
			}

			list = append(list, value)
		}

		return list, nil
	}

	out := tree.NewMap()

	for i, rawKey := range keys {
		key, err := keyString(rawKey)
		if err != nil {
			return nil, err
		}

		value, err := fromLua(values[i], visited)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		out.Set(key, value)
	}

	return out, nil
}

func fromLua(raw lua.LValue, visited map[*lua.LTable]bool) (tree.Value, error) {
	switch typed := raw.(type) {
	case lua.LBool:
		return tree.Bool(bool(typed)), nil
	case lua.LString:
		return tree.String(string(typed)), nil
	case lua.LNumber:
		f := float64(typed)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return tree.Int(int64(f)), nil
		}

		return tree.Float(f), nil
	case *lua.LTable:
		return fromTable(typed, visited)
	default:
		if raw == lua.LNil {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: lua %s", nest.ErrUnsupportedValue, raw.Type())
	}
}

func isSequence(keys []lua.LValue) bool {
	if len(keys) == 0 {
		return false
	}

	for i, key := range keys {
		n, ok := key.(lua.LNumber)
		if !ok || float64(n) != float64(i+1) {
			return false
		}
	}

	return true
}

func keyString(key lua.LValue) (string, error) {
	switch typed := key.(type) {
	case lua.LString:
		return string(typed), nil
	case lua.LNumber:
		f := float64(typed)
		if f == math.Trunc(f) {
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}

		return strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: lua %s key", nest.ErrUnsupportedValue, key.Type())
	}
}

func writeValue(out *strings.Builder, v tree.Value, depth int) error {
	switch typed := v.(type) {
	case nil:
		out.WriteString("nil")
	case tree.String:
		out.WriteString(quote(string(typed)))
	case tree.Int:
		out.WriteString(strconv.FormatInt(int64(typed), 10))
	case tree.Float:
		f := float64(typed)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: float %v", nest.ErrUnsupportedValue, f)
		}

		out.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case tree.Bool:
		out.WriteString(strconv.FormatBool(bool(typed)))
	case tree.List:
		out.WriteString("{\n")

		for _, item := range typed {
			out.WriteString(strings.Repeat(indentUnit, depth+1))

			err := writeValue(out, item, depth+1)
			if err != nil {
				return err
			}

			out.WriteString(",\n")
		}

		out.WriteString(strings.Repeat(indentUnit, depth) + "}")
	case *tree.Map:
		out.WriteString("{\n")

		for key, item := range typed.All() {
			out.WriteString(strings.Repeat(indentUnit, depth+1) + tableKey(key) + " = ")

			err := writeValue(out, item, depth+1)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}

			out.WriteString(",\n")
		}

		out.WriteString(strings.Repeat(indentUnit, depth) + "}")
	}

	return nil
}

func tableKey(key string) string {
	if identRegexp.MatchString(key) && !keywords[key] {
		return key
	}

	return "[" + quote(key) + "]"
}

// quote renders s as a Lua string literal. Control bytes use decimal escapes.
func quote(s string) string {
	var out strings.Builder

	out.WriteByte('"')

	for i := range len(s) {
		c := s[i]

		switch c {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&out, `\%03d`, c)
			} else {
				out.WriteByte(c)
			}
		}
	}

	out.WriteByte('"')

	return out.String()
}

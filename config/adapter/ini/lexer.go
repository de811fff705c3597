package ini

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-conf/config/tree"
)

// ErrSyntax is returned for lines that are neither comments, section headers nor assignments.
var ErrSyntax = errors.New("syntax error")

var (
	lineRegexp  = regexp.MustCompile("\r\n|\r|\n")
	intRegexp   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatRegexp = regexp.MustCompile(`^[-+]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][-+]?[0-9]+)?$`)
)

// listSuffix marks keys whose values are appended to a list: "hosts[] = a".
const listSuffix = "[]"

// lex parses INI text into a flat map. Keys before the first section header
// are stored in the root; each section becomes a *tree.Map under its name.
// Keys are not split here: nesting is left to the nest package.
// A double-quoted value may span several lines.
func lex(input string) (*tree.Map, error) {
	root := tree.NewMap()
	scope := root
	lines := splitLines(input)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		lno := i + 1

		switch {
		case line == "", strings.HasPrefix(line, ";"), strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			name, err := sectionName(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, lno, err)
			}

			scope = openSection(root, name)
		default:
			var consumed int

			line, consumed = joinQuoted(lines[i:])
			i += consumed

			err := assignLine(scope, line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, lno, err)
			}
		}
	}

	return root, nil
}

// splitLines splits input after every line break, keeping the breaks.
func splitLines(input string) []string {
	var (
		lines []string
		start int
	)

	for _, loc := range lineRegexp.FindAllStringIndex(input, -1) {
		lines = append(lines, input[start:loc[1]])
		start = loc[1]
	}

	return append(lines, input[start:])
}

// joinQuoted returns the assignment starting at lines[0], trimmed. When its
// value opens a double quote that the line does not close, the following
// lines are appended verbatim up to the one holding the closing quote.
// It also returns how many extra lines were consumed.
func joinQuoted(lines []string) (string, int) {
	_, raw, found := strings.Cut(lines[0], "=")
	raw = strings.TrimLeft(raw, " \t")

	if !found || !strings.HasPrefix(raw, `"`) || strings.Contains(raw[1:], `"`) {
		return strings.TrimSpace(lines[0]), 0
	}

	var joined strings.Builder

	joined.WriteString(lines[0])

	for n, next := range lines[1:] {
		joined.WriteString(next)

		if strings.Contains(next, `"`) {
			return strings.TrimSpace(joined.String()), n + 1
		}
	}

	return strings.TrimSpace(lines[0]), 0
}

func sectionName(line string) (string, error) {
	end := strings.Index(line, "]")
	if end < 0 {
		return "", fmt.Errorf("unterminated section header %q", line)
	}

	trailer := strings.TrimSpace(line[end+1:])
	if trailer != "" && !isComment(trailer) {
		return "", fmt.Errorf("unexpected %q after section header", trailer)
	}

	name := strings.TrimSpace(line[1:end])
	if name == "" {
		return "", errors.New("empty section name")
	}

	return name, nil
}

// openSection returns the map for name, reusing it when the header repeats.
func openSection(root *tree.Map, name string) *tree.Map {
	if existing, ok := root.Get(name); ok {
		if section, isMap := existing.(*tree.Map); isMap {
			return section
		}
	}

	section := tree.NewMap()
	root.Set(name, section)

	return section
}

func assignLine(scope *tree.Map, line string) error {
	key, raw, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("expected key = value, got %q", line)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty key")
	}

	value, err := parseValue(strings.TrimSpace(raw))
	if err != nil {
		return err
	}

	if base, isList := strings.CutSuffix(key, listSuffix); isList {
		if base == "" {
			return errors.New("empty key")
		}

		list, _ := scope.Get(base)
		items, _ := list.(tree.List)
		scope.Set(base, append(items, value))

		return nil
	}

	scope.Set(key, value)

	return nil
}

// parseValue turns the right-hand side of an assignment into a scalar.
// Quoted text is kept verbatim as a string; bare words are typed.
func parseValue(raw string) (tree.Value, error) {
	if raw != "" && (raw[0] == '"' || raw[0] == '\'') {
		quote := raw[0]

		end := strings.IndexByte(raw[1:], quote)
		if end < 0 {
			return nil, fmt.Errorf("unterminated string %s", raw)
		}

		trailer := strings.TrimSpace(raw[end+2:])
		if trailer != "" && !isComment(trailer) {
			return nil, fmt.Errorf("unexpected %q after string", trailer)
		}

		return tree.String(raw[1 : end+1]), nil
	}

	if before, _, found := strings.Cut(raw, ";"); found {
		raw = strings.TrimSpace(before)
	}

	return typedValue(raw), nil
}

func typedValue(raw string) tree.Value {
	switch strings.ToLower(raw) {
	case "true", "on", "yes":
		return tree.Bool(true)
	case "false", "off", "no":
		return tree.Bool(false)
	case "null", "none":
		return nil
	}

	if intRegexp.MatchString(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return tree.Int(n)
		}
	}

	if floatRegexp.MatchString(raw) {
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return tree.Float(f)
		}
	}

	return tree.String(raw)
}

func isComment(s string) bool {
	return strings.HasPrefix(s, ";") || strings.HasPrefix(s, "#")
}

package nest_test

import (
	"math"
	"testing"

	"github.com/0xalexb/hjarta-conf/config/nest"
	"github.com/0xalexb/hjarta-conf/config/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    tree.Value
		expected string
	}{
		{name: "true", value: tree.Bool(true), expected: "true"},
		{name: "false", value: tree.Bool(false), expected: "false"},
		{name: "integer", value: tree.Int(42), expected: "42"},
		{name: "negative integer", value: tree.Int(-7), expected: "-7"},
		{name: "float", value: tree.Float(3.14), expected: "3.14"},
		{name: "whole float keeps decimal point", value: tree.Float(2), expected: "2.0"},
		{name: "large float has no exponent", value: tree.Float(1e21), expected: "1000000000000000000000.0"},
		{name: "string", value: tree.String("hello"), expected: `"hello"`},
		{name: "empty string", value: tree.String(""), expected: `""`},
		{name: "single quote is fine", value: tree.String("it's"), expected: `"it's"`},
		{name: "null", value: nil, expected: `""`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := nest.EncodeValue(testCase.value)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, encoded)
		})
	}
}

func TestEncodeValue_Unsupported(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value tree.Value
	}{
		{name: "double quote", value: tree.String(`a"b`)},
		{name: "NaN", value: tree.Float(math.NaN())},
		{name: "infinity", value: tree.Float(math.Inf(1))},
		{name: "map", value: tree.NewMap()},
		{name: "list", value: tree.List{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := nest.EncodeValue(testCase.value)
			require.ErrorIs(t, err, nest.ErrUnsupportedValue)
		})
	}
}

func TestFlattener_ScalarLines(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    tree.Value
		expected string
	}{
		{name: "bool", value: tree.Bool(true), expected: "k = true\n"},
		{name: "float", value: tree.Float(3.14), expected: "k = 3.14\n"},
		{name: "string", value: tree.String("hello"), expected: "k = \"hello\"\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := nest.NewFlattener().Flatten(tree.NewMap().With("k", testCase.value))
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, out)
		})
	}
}

func TestFlattener_QuoteInStringFails(t *testing.T) {
	t.Parallel()

	_, err := nest.NewFlattener().Flatten(tree.NewMap().With("k", tree.String(`a"b`)))
	require.ErrorIs(t, err, nest.ErrUnsupportedValue)

	nested := tree.NewMap().With("s", tree.NewMap().With("k", tree.String(`a"b`)))
	_, err = nest.NewFlattener().Flatten(nested)
	require.ErrorIs(t, err, nest.ErrUnsupportedValue)
}

func TestFlattener_ScalarsBeforeSections(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().
		With("section1", tree.NewMap().With("a", tree.Int(1))).
		With("scalarX", tree.String("x")).
		With("section2", tree.NewMap().With("b", tree.Int(2))).
		With("scalarY", tree.String("y"))

	out, err := nest.NewFlattener().Flatten(root)
	require.NoError(t, err)

	expected := "scalarX = \"x\"\n" +
		"scalarY = \"y\"\n" +
		"[section1]\n" +
		"a = 1\n" +
		"\n" +
		"[section2]\n" +
		"b = 2\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestFlattener_NestedPathsRelativeToSection(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().
		With("db", tree.NewMap().
			With("primary", tree.NewMap().
				With("host", tree.String("h1")).
				With("port", tree.Int(5432))).
			With("replicas", tree.List{tree.String("r1"), tree.String("r2")}))

	out, err := nest.NewFlattener().Flatten(root)
	require.NoError(t, err)

	expected := "[db]\n" +
		"primary.host = \"h1\"\n" +
		"primary.port = 5432\n" +
		"replicas.0 = \"r1\"\n" +
		"replicas.1 = \"r2\"\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestFlattener_RenderWithoutSections(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().
		With("db", tree.NewMap().With("host", tree.String("h"))).
		With("debug", tree.Bool(false))

	out, err := nest.NewFlattener(
		nest.WithRenderWithoutSections(true),
		nest.WithSeparator(":"),
	).Flatten(root)
	require.NoError(t, err)

	assert.Equal(t, "db:host = \"h\"\ndebug = false\n", out)
}

func TestFlattener_TopLevelListIsSection(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().With("hosts", tree.List{tree.String("a"), tree.String("b")})

	out, err := nest.NewFlattener().Flatten(root)
	require.NoError(t, err)

	assert.Equal(t, "[hosts]\n0 = \"a\"\n1 = \"b\"\n\n", out)
}

func TestFlattener_EmptyTree(t *testing.T) {
	t.Parallel()

	out, err := nest.NewFlattener().Flatten(tree.NewMap())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFlattener_RejectsUnreadableKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		root *tree.Map
	}{
		{name: "semicolon prefix", root: tree.NewMap().With(";k", tree.Int(1))},
		{name: "hash prefix", root: tree.NewMap().With("#k", tree.Int(1))},
		{name: "bracket prefix", root: tree.NewMap().With("[k", tree.Int(1))},
		{name: "equals sign", root: tree.NewMap().With("a=b", tree.Int(1))},
		{name: "line break", root: tree.NewMap().With("a\nb", tree.Int(1))},
		{name: "surrounding blanks", root: tree.NewMap().With(" k", tree.Int(1))},
		{name: "list suffix", root: tree.NewMap().With("k[]", tree.Int(1))},
		{name: "empty key", root: tree.NewMap().With("", tree.Int(1))},
		{name: "empty nested key", root: tree.NewMap().With("s", tree.NewMap().With("a", tree.NewMap().With("", tree.Int(1))))},
		{name: "nested equals sign", root: tree.NewMap().With("s", tree.NewMap().With("a=b", tree.Int(1)))},
		{name: "nested comment prefix", root: tree.NewMap().With("s", tree.NewMap().With(";k", tree.Int(1)))},
		{name: "bracket in section name", root: tree.NewMap().With("a]b", tree.NewMap().With("k", tree.Int(1)))},
		{name: "empty section name segment", root: tree.NewMap().With("a..b", tree.NewMap().With("k", tree.Int(1)))},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := nest.NewFlattener().Flatten(testCase.root)
			require.ErrorIs(t, err, nest.ErrInvalidKey)
		})
	}
}

func TestFlattener_RejectsUnreadableKeysWithoutSections(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().With("s", tree.NewMap().With("a=b", tree.Int(1)))

	_, err := nest.NewFlattener(nest.WithRenderWithoutSections(true)).Flatten(root)
	require.ErrorIs(t, err, nest.ErrInvalidKey)
}

func TestFlattener_AllowsSpecialCharactersInsideKeys(t *testing.T) {
	t.Parallel()

	root := tree.NewMap().
		With("a;b", tree.Int(1)).
		With("x#y", tree.Int(2)).
		With("log-level", tree.String("debug"))

	out, err := nest.NewFlattener().Flatten(root)
	require.NoError(t, err)
	assert.Equal(t, "a;b = 1\nx#y = 2\nlog-level = \"debug\"\n", out)
}

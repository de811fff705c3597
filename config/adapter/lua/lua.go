package lua

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// Name is the format name reported by the adapter.
const Name = "lua"

// DefaultTimeout bounds the execution time of a configuration script.
const DefaultTimeout = 5 * time.Second

// ErrScript is returned when a configuration script fails to compile or run.
var ErrScript = errors.New("script error")

// ErrNoTable is returned when a script does not return a table.
var ErrNoTable = errors.New("script did not return a table")

// Option defines a function type for configuring the adapter.
type Option func(*Adapter)

// WithProvenance sets the generator name written in the header comment.
func WithProvenance(provenance string) Option {
	return func(a *Adapter) {
		a.provenance = provenance
	}
}

// WithTimeout sets the maximum execution time of a script. Zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = timeout
	}
}

// Adapter implements config.Adapter for Lua scripts that return a table.
//
// Decoding executes the script; each call gets its own interpreter with only
// the base, table, string and math libraries opened.
type Adapter struct {
	provenance string
	timeout    time.Duration
}

var _ config.Adapter = (*Adapter)(nil)

// New creates a Lua adapter.
func New(opts ...Option) *Adapter {
	adapter := &Adapter{
		provenance: config.DefaultProvenance,
		timeout:    DefaultTimeout,
	}

	for _, apply := range opts {
		apply(adapter)
	}

	return adapter
}

// Name returns "lua".
func (a *Adapter) Name() string {
	return Name
}

// Supports reports whether filename has the .lua extension.
func (a *Adapter) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".lua")
}

// Decode runs the script and converts the table it returns.
func (a *Adapter) Decode(data []byte) (*tree.Map, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)

	if a.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		L.SetContext(ctx)
	}

	fn, err := L.LoadString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}

	L.Push(fn)

	err = L.PCall(0, 1, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}

	result := L.Get(-1)
	L.Pop(1)

	table, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoTable, result.Type())
	}

	value, err := fromTable(table, make(map[*lua.LTable]bool))
	if err != nil {
		return nil, err
	}

	root, ok := value.(*tree.Map)
	if !ok {
		return nil, fmt.Errorf("%w: got a sequence", ErrNoTable)
	}

	return root, nil
}

// Encode renders root as a Lua chunk returning a table literal.
func (a *Adapter) Encode(root *tree.Map) ([]byte, error) {
	var out strings.Builder

	out.WriteString("-- generated by " + a.provenance + "\n\nreturn ")

	err := writeValue(&out, root, 0)
	if err != nil {
		return nil, err
	}

	out.WriteString("\n")

	return []byte(out.String()), nil
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

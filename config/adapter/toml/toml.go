package toml

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// Name is the format name reported by the adapter.
const Name = "toml"

// Option defines a function type for configuring the adapter.
type Option func(*Adapter)

// WithProvenance sets the generator name written in the header comment.
func WithProvenance(provenance string) Option {
	return func(a *Adapter) {
		a.provenance = provenance
	}
}

// Adapter implements config.Adapter for TOML documents.
type Adapter struct {
	provenance string
}

var _ config.Adapter = (*Adapter)(nil)

// New creates a TOML adapter.
func New(opts ...Option) *Adapter {
	adapter := &Adapter{provenance: config.DefaultProvenance}

	for _, apply := range opts {
		apply(adapter)
	}

	return adapter
}

// Name returns "toml".
func (a *Adapter) Name() string {
	return Name
}

// Supports reports whether filename has the .toml extension.
func (a *Adapter) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

// Decode parses a TOML document. Dates and times become strings.
func (a *Adapter) Decode(data []byte) (*tree.Map, error) {
	var raw map[string]any

	err := toml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	value, err := tree.FromAny(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}

	root, ok := value.(*tree.Map)
	if !ok {
		return tree.NewMap(), nil
	}

	return root, nil
}

// Encode renders root as TOML. Null values are left out.
func (a *Adapter) Encode(root *tree.Map) ([]byte, error) {
	body, err := toml.Marshal(withoutNulls(root))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return append([]byte("# generated by "+a.provenance+"\n\n"), body...), nil
}

// normalize replaces TOML date and time values with their textual form.
func normalize(raw any) any {
	switch typed := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalize(value)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, value := range typed {
			out = append(out, normalize(value))
		}

		return out
	case time.Time:
		return typed.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return typed.String()
	default:
		return raw
	}
}

func withoutNulls(v tree.Value) any {
	switch typed := v.(type) {
	case *tree.Map:
		out := make(map[string]any, typed.Len())

		for key, item := range typed.All() {
			if item != nil {
				out[key] = withoutNulls(item)
			}
		}

		return out
	case tree.List:
		out := make([]any, 0, len(typed))

		for _, item := range typed {
			if item != nil {
				out = append(out, withoutNulls(item))
			}
		}

		return out
	default:
		return tree.ToAny(v)
	}
}

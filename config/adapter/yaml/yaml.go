package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// Name is the format name reported by the adapter.
const Name = "yaml"

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// ErrPathNotFound is returned when the specified path is not found in the YAML document
// or does not lead to a mapping.
var ErrPathNotFound = config.ErrPathNotFound

//nolint:gochecknoglobals // read-only extension list.
var extensions = []string{".yaml", ".yml", ".neon"}

// plainPathRegexp matches paths goccy/go-yaml can address without quoting.
var plainPathRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+(` + regexp.QuoteMeta(config.PathSeparator) + `[A-Za-z0-9_-]+)*$`)

// Option defines a function type for configuring the adapter.
type Option func(*Adapter)

// WithProvenance sets the generator name written in the header comment.
func WithProvenance(provenance string) Option {
	return func(a *Adapter) {
		a.provenance = provenance
	}
}

// Adapter implements config.Adapter for YAML and NEON block documents.
// It uses goccy/go-yaml ordered maps, so key order survives a round trip.
type Adapter struct {
	provenance string
}

var (
	_ config.Adapter     = (*Adapter)(nil)
	_ config.PathDecoder = (*Adapter)(nil)
)

// New creates a new YAML adapter instance.
func New(opts ...Option) *Adapter {
	adapter := &Adapter{provenance: config.DefaultProvenance}

	for _, apply := range opts {
		apply(adapter)
	}

	return adapter
}

// Name returns "yaml".
func (a *Adapter) Name() string {
	return Name
}

// Supports reports whether filename has a .yaml, .yml or .neon extension.
func (a *Adapter) Supports(filename string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(filename)))
}

// Decode parses a YAML document whose root is a mapping.
func (a *Adapter) Decode(data []byte) (*tree.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}

	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return toRoot(raw)
}

// DecodePath decodes only the mapping found at path.
// The path uses colon (:) as separator; an empty path decodes the whole document.
// Keys the YAML path syntax cannot address, such as "a.b", are looked up
// in the fully decoded document instead.
func (a *Adapter) DecodePath(data []byte, path string) (*tree.Map, error) {
	if path == "" {
		return a.Decode(data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}

	if !plainPathRegexp.MatchString(path) {
		root, err := a.Decode(data)
		if err != nil {
			return nil, err
		}

		return config.Section(root, path)
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := pathObj.ReadNode(bytes.NewReader(data))
	if err != nil {
		if isKeyNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("reading path %q: %w", path, err)
	}

	var raw any

	err = yaml.NodeToValue(node, &raw, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("reading path %q: %w", path, err)
	}

	section, err := toRoot(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
	}

	return section, nil
}

// Encode renders root as a block-style YAML document.
func (a *Adapter) Encode(root *tree.Map) ([]byte, error) {
	body, err := yaml.Marshal(toMapSlice(root))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return append([]byte("# generated by "+a.provenance+"\n\n"), body...), nil
}

func toRoot(raw any) (*tree.Map, error) {
	value, err := fromYAML(raw)
	if err != nil {
		return nil, err
	}

	root, ok := value.(*tree.Map)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, tree.Kind(value))
	}

	return root, nil
}

func fromYAML(raw any) (tree.Value, error) {
	switch typed := raw.(type) {
	case yaml.MapSlice:
		out := tree.NewMap()

		for _, item := range typed {
			key := fmt.Sprint(item.Key)

			value, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}

			out.Set(key, value)
		}

		return out, nil
	case []any:
		out := make(tree.List, 0, len(typed))

		for i, item := range typed {
			value, err := fromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}

			out = append(out, value)
		}

		return out, nil
	default:
		value, err := tree.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding value: %w", err)
		}

		return value, nil
	}
}

func toMapSlice(m *tree.Map) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, m.Len())

	for key, value := range m.All() {
		out = append(out, yaml.MapItem{Key: key, Value: toYAML(value)})
	}

	return out
}

func toYAML(v tree.Value) any {
	switch typed := v.(type) {
	case *tree.Map:
		return toMapSlice(typed)
	case tree.List:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, toYAML(item))
		}

		return out
	default:
		return tree.ToAny(v)
	}
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	parts := strings.Split(path, config.PathSeparator)

	return "$." + strings.Join(parts, ".")
}

// isKeyNotFoundError checks if the error indicates a key was not found.
func isKeyNotFoundError(err error) bool {
	return yaml.IsNotFoundNodeError(err)
}

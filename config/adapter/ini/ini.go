package ini

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/nest"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// Name is the format name reported by the adapter.
const Name = "ini"

// Options holds configuration settings for the INI adapter.
type Options struct {
	Nest       []nest.Option
	Provenance string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithSeparator sets the separator of nested keys and section names.
func WithSeparator(separator string) Option {
	return func(opts *Options) {
		opts.Nest = append(opts.Nest, nest.WithSeparator(separator))
	}
}

// WithProcessSections sets whether section contents are nested under the
// section name (true, the default) or merged into the root.
func WithProcessSections(process bool) Option {
	return func(opts *Options) {
		opts.Nest = append(opts.Nest, nest.WithProcessSections(process))
	}
}

// WithRenderWithoutSections sets whether Encode writes every key with its
// full path and no section headers.
func WithRenderWithoutSections(without bool) Option {
	return func(opts *Options) {
		opts.Nest = append(opts.Nest, nest.WithRenderWithoutSections(without))
	}
}

// WithProvenance sets the generator name written in the header comment.
func WithProvenance(provenance string) Option {
	return func(opts *Options) {
		opts.Provenance = provenance
	}
}

// Adapter implements config.Adapter for INI files.
type Adapter struct {
	builder    *nest.Builder
	flattener  *nest.Flattener
	provenance string
}

var _ config.Adapter = (*Adapter)(nil)

// New creates an INI adapter.
func New(opts ...Option) *Adapter {
	options := Options{
		Nest:       nil,
		Provenance: config.DefaultProvenance,
	}

	for _, apply := range opts {
		apply(&options)
	}

	return &Adapter{
		builder:    nest.NewBuilder(options.Nest...),
		flattener:  nest.NewFlattener(options.Nest...),
		provenance: options.Provenance,
	}
}

// Name returns "ini".
func (a *Adapter) Name() string {
	return Name
}

// Supports reports whether filename has the .ini extension.
func (a *Adapter) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".ini")
}

// Decode parses INI data and nests dotted keys and section names.
func (a *Adapter) Decode(data []byte) (*tree.Map, error) {
	flat, err := lex(string(data))
	if err != nil {
		return nil, err
	}

	root, err := a.builder.Build(flat)
	if err != nil {
		return nil, fmt.Errorf("nesting keys: %w", err)
	}

	return root, nil
}

// Encode renders root as INI, preceded by a provenance comment.
func (a *Adapter) Encode(root *tree.Map) ([]byte, error) {
	body, err := a.flattener.Flatten(root)
	if err != nil {
		return nil, err
	}

	return []byte("; generated by " + a.provenance + "\n\n" + body), nil
}

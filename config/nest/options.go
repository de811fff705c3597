package nest

// Options controls how keys are nested and how trees are flattened.
type Options struct {
	// Separator splits keys and section names into nesting levels.
	Separator string
	// ProcessSections nests section contents under the section name.
	// When false, section names are dropped and their keys land in the root.
	ProcessSections bool
	// RenderWithoutSections flattens the whole tree into the global
	// namespace, without any [section] headers.
	RenderWithoutSections bool
}

// Option defines a function type for applying options.
type Option func(*Options)

// WithSeparator sets the nesting separator. An empty value keeps the default.
func WithSeparator(separator string) Option {
	return func(opts *Options) {
		if separator != "" {
			opts.Separator = separator
		}
	}
}

// WithProcessSections sets whether sections are nested under their names.
func WithProcessSections(process bool) Option {
	return func(opts *Options) {
		opts.ProcessSections = process
	}
}

// WithRenderWithoutSections sets whether output omits section headers.
func WithRenderWithoutSections(without bool) Option {
	return func(opts *Options) {
		opts.RenderWithoutSections = without
	}
}

func newOptions(opts []Option) Options {
	options := Options{
		Separator:             DefaultSeparator,
		ProcessSections:       true,
		RenderWithoutSections: false,
	}

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

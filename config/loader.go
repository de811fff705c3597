package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-conf/config/fetcher/file"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// ErrNoAdapters is returned when a Loader is created without adapters.
var ErrNoAdapters = errors.New("no adapters configured")

// ErrUnsupportedFormat is returned when no adapter supports a file name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Loader dispatches decoding and encoding to the adapter matching a file name.
// A Loader holds no per-call state and is safe for concurrent use.
type Loader struct {
	adapters []Adapter
	logger   *slog.Logger
}

// NewLoader creates a Loader. Adapters are consulted in the given order.
// A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger, adapters ...Adapter) (*Loader, error) {
	if len(adapters) == 0 {
		return nil, ErrNoAdapters
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		adapters: adapters,
		logger:   logger,
	}, nil
}

// Adapters returns the configured adapters in lookup order.
func (l *Loader) Adapters() []Adapter {
	out := make([]Adapter, len(l.adapters))
	copy(out, l.adapters)

	return out
}

// Adapter returns the first adapter supporting filename.
//
//nolint:ireturn // adapters are only known by their interface
func (l *Loader) Adapter(filename string) (Adapter, error) {
	for _, adapter := range l.adapters {
		if adapter.Supports(filename) {
			return adapter, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

// Load decodes the data returned by fetcher with the adapter matching filename.
func (l *Loader) Load(filename string, fetcher DataFetcher) (*tree.Map, error) {
	adapter, err := l.Adapter(filename)
	if err != nil {
		return nil, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	root, err := adapter.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q as %s: %w", filename, adapter.Name(), err)
	}

	l.logger.Debug("configuration decoded",
		slog.String("file", filename),
		slog.String("adapter", adapter.Name()),
		slog.Int("keys", root.Len()),
	)

	return root, nil
}

// LoadFile reads and decodes the file at path.
func (l *Loader) LoadFile(path string) (*tree.Map, error) {
	_, err := l.Adapter(path)
	if err != nil {
		return nil, err
	}

	fetcher, err := file.NewFetcher(path)
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	return l.Load(path, fetcher)
}

// LoadSection decodes the data returned by fetcher and returns the map at the
// colon-separated path. Adapters implementing PathDecoder decode the section
// directly; for the others the whole tree is decoded and narrowed with Section.
func (l *Loader) LoadSection(filename string, fetcher DataFetcher, path string) (*tree.Map, error) {
	adapter, err := l.Adapter(filename)
	if err != nil {
		return nil, err
	}

	pathDecoder, ok := adapter.(PathDecoder)
	if !ok || path == "" {
		root, err := l.Load(filename, fetcher)
		if err != nil {
			return nil, err
		}

		return Section(root, path)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	section, err := pathDecoder.DecodePath(data, path)
	if err != nil {
		return nil, fmt.Errorf("decoding %q as %s: %w", filename, adapter.Name(), err)
	}

	l.logger.Debug("configuration section decoded",
		slog.String("file", filename),
		slog.String("adapter", adapter.Name()),
		slog.String("path", path),
		slog.Int("keys", section.Len()),
	)

	return section, nil
}

// LoadFileSection reads the file at filePath and returns the map at path.
func (l *Loader) LoadFileSection(filePath, path string) (*tree.Map, error) {
	_, err := l.Adapter(filePath)
	if err != nil {
		return nil, err
	}

	fetcher, err := file.NewFetcher(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	return l.LoadSection(filePath, fetcher, path)
}

// Encode renders root with the adapter matching filename.
func (l *Loader) Encode(filename string, root *tree.Map) ([]byte, error) {
	adapter, err := l.Adapter(filename)
	if err != nil {
		return nil, err
	}

	data, err := adapter.Encode(root)
	if err != nil {
		return nil, fmt.Errorf("encoding %q as %s: %w", filename, adapter.Name(), err)
	}

	return data, nil
}

// DumpFile encodes root and writes it to path, replacing any existing file.
func (l *Loader) DumpFile(path string, root *tree.Map) error {
	data, err := l.Encode(path, root)
	if err != nil {
		return err
	}

	err = file.Write(path, data)
	if err != nil {
		return fmt.Errorf("writing data error: %w", err)
	}

	l.logger.Debug("configuration written", slog.String("file", path), slog.Int("bytes", len(data)))

	return nil
}

// Convert loads src and writes its tree to dst, each in the format of its extension.
func (l *Loader) Convert(src, dst string) error {
	root, err := l.LoadFile(src)
	if err != nil {
		return err
	}

	return l.DumpFile(dst, root)
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-conf/config/tree"
)

// DefaultProvenance names the generator in the header comment of encoded files.
const DefaultProvenance = "hjarta-conf"

// PathSeparator separates the segments of a Provider path.
const PathSeparator = ":"

// ErrPathNotFound is returned when a Provider path does not lead to a map.
var ErrPathNotFound = errors.New("path not found")

// Adapter converts one textual configuration format to and from a tree.
type Adapter interface {
	// Name returns a short format name, e.g. "ini".
	Name() string
	// Supports reports whether the adapter handles the given file name.
	Supports(filename string) bool
	// Decode parses data into a new tree.
	Decode(data []byte) (*tree.Map, error)
	// Encode renders the tree in the adapter's format.
	Encode(root *tree.Map) ([]byte, error)
}

// PathDecoder is implemented by adapters that can decode the map found at a
// colon-separated path directly, without building the whole tree first.
// It must report a missing or non-map path with ErrPathNotFound.
type PathDecoder interface {
	DecodePath(data []byte, path string) (*tree.Map, error)
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Provider returns a function that loads filename and returns the map found at path.
//
// The path uses colon (:) as the separator for nested keys:
//   - "api:permissions" navigates to config["api"]["permissions"]
//   - "" (empty path) returns the whole document
func Provider(filename, path string) func(*Loader) (*tree.Map, error) {
	return func(loader *Loader) (*tree.Map, error) {
		section, err := loader.LoadFileSection(filename, path)
		if err != nil {
			return nil, err
		}

		slog.Info("configuration loaded", slog.String("file", filename), slog.String("path", path))

		return section, nil
	}
}

// Section returns the map found at a colon-separated path of root.
// An empty path returns root itself.
func Section(root *tree.Map, path string) (*tree.Map, error) {
	if path == "" {
		return root, nil
	}

	value, found := root.Lookup(strings.Split(path, PathSeparator)...)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	section, isMap := value.(*tree.Map)
	if !isMap {
		return nil, fmt.Errorf("%w: %s holds a %s, not a map", ErrPathNotFound, path, tree.Kind(value))
	}

	return section, nil
}

package nest

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-conf/config/tree"
)

// promotedKey is the sub-key that wraps an already populated map instead of
// starting a fresh one. The behaviour mirrors numeric-key handling of the
// INI loaders this package is compatible with.
const promotedKey = "0"

// Builder expands flat, possibly sectioned configuration into a nested tree.
type Builder struct {
	options Options
}

// NewBuilder creates a Builder. Defaults: separator ".", sections processed.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{options: newOptions(opts)}
}

// Build expands flat into a new nested tree. Top-level *tree.Map values are
// treated as sections; all other values as keys of the root. flat is not modified.
func (b *Builder) Build(flat *tree.Map) (*tree.Map, error) {
	root := tree.NewMap()
	sep := b.options.Separator

	for name, value := range flat.All() {
		section, isSection := value.(*tree.Map)

		var err error

		switch {
		case isSection && !b.options.ProcessSections:
			for key, item := range section.All() {
				root, err = b.assign(root, key, item)
				if err != nil {
					return nil, err
				}
			}
		case isSection && strings.Contains(name, sep):
			root, err = b.mergeSection(root, name, section)
			if err != nil {
				return nil, err
			}
		case isSection:
			processed, err := b.processSection(section)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", name, err)
			}

			root.Set(name, processed)
		default:
			root, err = b.assign(root, name, value)
			if err != nil {
				return nil, err
			}
		}
	}

	return root, nil
}

// mergeSection wraps the section content into a chain of maps following
// the segments of name and deep-merges the chain into root.
func (b *Builder) mergeSection(root *tree.Map, name string, section *tree.Map) (*tree.Map, error) {
	segments, err := Segments(name, b.options.Separator)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", name, err)
	}

	processed, err := b.processSection(section)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", name, err)
	}

	chain := processed
	for i := len(segments) - 1; i >= 0; i-- {
		chain = tree.NewMap().With(segments[i], chain)
	}

	return Merge(root, chain), nil
}

func (b *Builder) processSection(section *tree.Map) (*tree.Map, error) {
	result := tree.NewMap()

	for key, value := range section.All() {
		var err error

		result, err = b.assign(result, key, value)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// assign stores value under key inside into and returns the map the caller
// must keep, which differs from into when the promoted key wraps it.
func (b *Builder) assign(into *tree.Map, key string, value tree.Value) (*tree.Map, error) {
	head, rest, nested, err := Split(key, b.options.Separator)
	if err != nil {
		return nil, err
	}

	if !nested {
		into.Set(key, tree.Clone(value))

		return into, nil
	}

	existing, _ := into.Get(head)

	var child *tree.Map

	switch typed := existing.(type) {
	case nil:
		if head == promotedKey && into.Len() > 0 {
			child = into
			into = tree.NewMap()
		} else {
			child = tree.NewMap()
		}
	case *tree.Map:
		child = typed
	default:
		return nil, fmt.Errorf("%w: cannot create sub-key for %q, key already exists as %s",
			ErrKeyConflict, head, tree.Kind(existing))
	}

	child, err = b.assign(child, rest, value)
	if err != nil {
		return nil, err
	}

	into.Set(head, child)

	return into, nil
}

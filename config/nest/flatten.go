package nest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-conf/config/tree"
)

// Flattener renders nested trees as "path = value" lines.
type Flattener struct {
	options Options
}

// NewFlattener creates a Flattener. Defaults: separator ".", sections rendered.
func NewFlattener(opts ...Option) *Flattener {
	return &Flattener{options: newOptions(opts)}
}

// Flatten renders root. Unless sections are disabled, top-level scalars are
// written first, then every top-level map or list as a [section] block.
func (f *Flattener) Flatten(root *tree.Map) (string, error) {
	var out strings.Builder

	if f.options.RenderWithoutSections {
		err := f.branch(&out, root, nil)
		if err != nil {
			return "", err
		}

		return out.String(), nil
	}

	scalars, sections := partition(root)

	for _, key := range scalars {
		value, _ := root.Get(key)

		err := f.line(&out, []string{key}, value)
		if err != nil {
			return "", err
		}
	}

	for _, key := range sections {
		value, _ := root.Get(key)

		err := f.checkSection(key)
		if err != nil {
			return "", err
		}

		out.WriteString("[" + key + "]\n")

		err = f.branch(&out, value, nil)
		if err != nil {
			return "", err
		}

		out.WriteString("\n")
	}

	return out.String(), nil
}

// partition splits the keys of root into scalars and containers,
// keeping the relative order within each group.
func partition(root *tree.Map) (scalars, sections []string) {
	for key, value := range root.All() {
		if tree.IsContainer(value) {
			sections = append(sections, key)
		} else {
			scalars = append(scalars, key)
		}
	}

	return scalars, sections
}

func (f *Flattener) branch(out *strings.Builder, node tree.Value, parents []string) error {
	switch typed := node.(type) {
	case *tree.Map:
		for key, value := range typed.All() {
			err := f.branch(out, value, appendPath(parents, key))
			if err != nil {
				return err
			}
		}
	case tree.List:
		for i, value := range typed {
			err := f.branch(out, value, appendPath(parents, strconv.Itoa(i)))
			if err != nil {
				return err
			}
		}
	default:
		return f.line(out, parents, node)
	}

	return nil
}

func (f *Flattener) line(out *strings.Builder, path []string, value tree.Value) error {
	key := strings.Join(path, f.options.Separator)

	err := f.checkKey(key)
	if err != nil {
		return err
	}

	encoded, err := EncodeValue(value)
	if err != nil {
		return err
	}

	out.WriteString(key)
	out.WriteString(" = ")
	out.WriteString(encoded)
	out.WriteString("\n")

	return nil
}

// checkKey rejects keys an INI reader would not return unchanged.
func (f *Flattener) checkKey(key string) error {
	_, err := Segments(key, f.options.Separator)
	if err != nil {
		return err
	}

	if key == "" ||
		strings.TrimSpace(key) != key ||
		strings.ContainsAny(key, "=\r\n") ||
		strings.ContainsAny(key[:1], ";#[") ||
		strings.HasSuffix(key, "[]") {
		return fmt.Errorf("%w: %q cannot be written as a key", ErrInvalidKey, key)
	}

	return nil
}

// checkSection rejects section names that would not read back unchanged.
func (f *Flattener) checkSection(name string) error {
	_, err := Segments(name, f.options.Separator)
	if err != nil {
		return err
	}

	if name == "" || strings.TrimSpace(name) != name || strings.ContainsAny(name, "]\r\n") {
		return fmt.Errorf("%w: %q cannot be written as a section name", ErrInvalidKey, name)
	}

	return nil
}

func appendPath(parents []string, key string) []string {
	path := make([]string, len(parents), len(parents)+1)
	copy(path, parents)

	return append(path, key)
}

package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/nest"
	"github.com/0xalexb/hjarta-conf/config/tree"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value at a colon-separated path, e.g. database:primary:host",
		ArgsUsage: "FILE [PATH]",
		Action:    get,
	}
}

func get(c *cli.Context) error {
	err := requireArgs(c, "FILE")
	if err != nil {
		return err
	}

	resolved, err := loadSettings(c)
	if err != nil {
		return err
	}

	filename, path := c.Args().Get(0), c.Args().Get(1)

	return withLoader(c, resolved, func(loader *config.Loader) error {
		root, err := loader.LoadFile(filename)
		if err != nil {
			return err
		}

		value := tree.Value(root)

		if path != "" {
			var found bool

			value, found = root.Lookup(strings.Split(path, config.PathSeparator)...)
			if !found {
				return fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
			}
		}

		out, err := render(value, resolved.NestOptions())
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(c.App.Writer, out)

		return err
	})
}

// render prints strings verbatim, other scalars in their INI form and
// containers as flat key/value lines.
func render(value tree.Value, opts []nest.Option) (string, error) {
	switch typed := value.(type) {
	case tree.String:
		return string(typed) + "\n", nil
	case *tree.Map:
		return flattenPlain(typed, opts)
	case tree.List:
		section := tree.NewMap()
		for i, item := range typed {
			section.Set(fmt.Sprint(i), item)
		}

		return flattenPlain(section, opts)
	default:
		encoded, err := nest.EncodeValue(value)
		if err != nil {
			return "", fmt.Errorf("rendering value: %w", err)
		}

		return encoded + "\n", nil
	}
}

func flattenPlain(section *tree.Map, opts []nest.Option) (string, error) {
	opts = append(opts, nest.WithRenderWithoutSections(true))

	out, err := nest.NewFlattener(opts...).Flatten(section)
	if err != nil {
		return "", fmt.Errorf("rendering section: %w", err)
	}

	return out, nil
}

package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/nest"
)

// ConvertCommand returns the convert command.
func ConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a configuration file to the format of the destination extension",
		ArgsUsage: "SRC DST",
		Action:    convert,
	}
}

// FlattenCommand returns the flatten command.
func FlattenCommand() *cli.Command {
	return &cli.Command{
		Name:      "flatten",
		Usage:     "Print a configuration file as flat INI key/value lines",
		ArgsUsage: "FILE",
		Action:    flatten,
	}
}

func convert(c *cli.Context) error {
	err := requireArgs(c, "SRC", "DST")
	if err != nil {
		return err
	}

	resolved, err := loadSettings(c)
	if err != nil {
		return err
	}

	src, dst := c.Args().Get(0), c.Args().Get(1)

	return withLoader(c, resolved, func(loader *config.Loader) error {
		err := loader.Convert(src, dst)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(c.App.Writer, "%s -> %s\n", src, dst)

		return err
	})
}

func flatten(c *cli.Context) error {
	err := requireArgs(c, "FILE")
	if err != nil {
		return err
	}

	resolved, err := loadSettings(c)
	if err != nil {
		return err
	}

	return withLoader(c, resolved, func(loader *config.Loader) error {
		root, err := loader.LoadFile(c.Args().First())
		if err != nil {
			return err
		}

		out, err := nest.NewFlattener(resolved.NestOptions()...).Flatten(root)
		if err != nil {
			return fmt.Errorf("flattening: %w", err)
		}

		_, err = fmt.Fprint(c.App.Writer, out)

		return err
	})
}

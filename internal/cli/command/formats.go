package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/0xalexb/hjarta-conf/config"
)

// FormatsCommand returns the formats command.
func FormatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "formats",
		Usage:  "List the supported configuration formats in lookup order",
		Action: formats,
	}
}

func formats(c *cli.Context) error {
	resolved, err := loadSettings(c)
	if err != nil {
		return err
	}

	return withLoader(c, resolved, func(loader *config.Loader) error {
		for _, adapter := range loader.Adapters() {
			_, err := fmt.Fprintln(c.App.Writer, adapter.Name())
			if err != nil {
				return err
			}
		}

		return nil
	})
}

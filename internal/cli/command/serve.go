package command

import (
	"github.com/urfave/cli/v2"

	conf "github.com/0xalexb/hjarta-conf"
	"github.com/0xalexb/hjarta-conf/listener"
)

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve a configuration file over HTTP; GET /NAME.EXT returns it in the format of EXT",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to listen on",
				Value: listener.DefaultAddress,
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	err := requireArgs(c, "FILE")
	if err != nil {
		return err
	}

	resolved, err := loadSettings(c)
	if err != nil {
		return err
	}

	app := conf.NewApp(
		conf.WithLogLevel(resolved.LogLevel),
		conf.WithLogFormat(resolved.LogFormat),
		conf.WithLogOutput(c.App.ErrWriter),
		conf.WithAdapters(resolved.Adapters()...),
		conf.WithListener(
			listener.WithAddress(c.String("address")),
			listener.WithFile(c.Args().First()),
		),
	)

	err = app.Err()
	if err != nil {
		return err
	}

	app.Run()

	return nil
}

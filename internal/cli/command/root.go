// Package command provides CLI command definitions for hjarta-conf.
//
// It uses urfave/cli/v2 for command parsing. Every command resolves its
// settings, starts the Fx application to obtain a *config.Loader, and
// writes its result to the application's Writer.
package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	conf "github.com/0xalexb/hjarta-conf"
	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/internal/cli/settings"
)

// EnvironMetadataKey names the App.Metadata entry that, when set to a
// map[string]string, replaces the process environment for settings lookup.
const EnvironMetadataKey = "environ"

var errMissingArgument = errors.New("missing argument")

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "hjarta-conf",
		Usage:   "convert configuration files between INI, YAML, Lua and TOML",
		Version: fmt.Sprintf("%s (built: %s)", conf.Version, conf.CompiledAt),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ConvertCommand(),
			GetCommand(),
			FlattenCommand(),
			FormatsCommand(),
			ServeCommand(),
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
// Their environment counterparts are read by the settings package.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: json, text",
		},
		&cli.StringFlag{
			Name:  "separator",
			Usage: "Separator of nested INI keys and section names",
		},
		&cli.StringFlag{
			Name:  "provenance",
			Usage: "Generator name written in the header of encoded files",
		},
		&cli.BoolFlag{
			Name:  "no-sections",
			Usage: "Write INI output without section headers",
		},
		&cli.BoolFlag{
			Name:  "raw-sections",
			Usage: "Merge INI section contents into the root instead of nesting them",
		},
	}
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *settings.Settings {
	return &settings.Settings{
		LogLevel:              c.String("log-level"),
		LogFormat:             c.String("log-format"),
		Separator:             c.String("separator"),
		Provenance:            c.String("provenance"),
		RenderWithoutSections: c.Bool("no-sections"),
		RawSections:           c.Bool("raw-sections"),
	}
}

// loadSettings resolves the settings for the running command.
func loadSettings(c *cli.Context) (*settings.Settings, error) {
	var environ map[string]string

	if c.App != nil {
		environ, _ = c.App.Metadata[EnvironMetadataKey].(map[string]string)
	}

	resolved, err := settings.Load(environ, ParseGlobalFlags(c))
	if err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}

	return resolved, nil
}

// withLoader starts the application configured by resolved and passes the
// provided loader to run. The application is stopped when run returns.
func withLoader(c *cli.Context, resolved *settings.Settings, run func(*config.Loader) error) error {
	var loader *config.Loader

	app := conf.NewApp(
		conf.WithLogLevel(resolved.LogLevel),
		conf.WithLogFormat(resolved.LogFormat),
		conf.WithLogOutput(c.App.ErrWriter),
		conf.WithAdapters(resolved.Adapters()...),
		conf.WithModules(fx.Invoke(func(l *config.Loader) {
			loader = l
		})),
	)

	err := app.Start()
	if err != nil {
		return err
	}

	defer func() { _ = app.Stop() }()

	return run(loader)
}

func requireArgs(c *cli.Context, names ...string) error {
	if c.Args().Len() < len(names) {
		return fmt.Errorf("%w: %s", errMissingArgument, names[c.Args().Len()])
	}

	return nil
}

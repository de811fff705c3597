package conf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/adapter/ini"
	"github.com/0xalexb/hjarta-conf/config/adapter/lua"
	"github.com/0xalexb/hjarta-conf/config/adapter/toml"
	"github.com/0xalexb/hjarta-conf/config/adapter/yaml"
	"github.com/0xalexb/hjarta-conf/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
// The container provides the logger, its LoggerConfig and a *config.Loader
// built from the configured adapters.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

// DefaultAdapters returns one adapter per supported format: INI, YAML, Lua and TOML.
func DefaultAdapters() []config.Adapter {
	return []config.Adapter{
		ini.New(),
		yaml.New(),
		lua.New(),
		toml.New(),
	}
}

func configure(options *Options) *fx.App {
	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	logger := createLogger(loggerConfig, output)
	slog.SetDefault(logger)

	adapters := options.Adapters
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		fx.Provide(func(logger *slog.Logger) (*config.Loader, error) {
			return config.NewLoader(logger, adapters...)
		}),
		fx.Options(options.Modules...),
	)
}

func createLogger(config logging.LoggerConfig, w io.Writer) *slog.Logger {
	return logging.NewLogger(config, w)
}

// Err returns the error raised while building the dependency graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

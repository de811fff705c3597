package listener

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-conf/config"
)

// NewModule creates an Fx module serving a configuration file over HTTP.
// It depends on the *config.Loader and *slog.Logger of the container and
// shuts the application down if the server stops unexpectedly.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	return fx.Module("listener",
		fx.Invoke(func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, loader *config.Loader, logger *slog.Logger) error {
			handler := NewHandler(loader, cfg.File, logger)

			srv, err := NewServer(handler, cfg, logger, func() {
				shutdownErr := shutdowner.Shutdown()
				if shutdownErr != nil {
					logger.Error("failed to trigger shutdown", "error", shutdownErr)
				}
			})
			if err != nil {
				return err
			}

			lifecycle.Append(fx.Hook{
				OnStart: srv.Start,
				OnStop:  srv.Stop,
			})

			return nil
		}),
	)
}

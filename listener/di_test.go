package listener

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/adapter/ini"
	"github.com/0xalexb/hjarta-conf/config/adapter/yaml"
)

func provideLoader() (*config.Loader, error) {
	return config.NewLoader(nil, ini.New(), yaml.New())
}

func TestNewModule_ServesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.ini")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nport = 3000\n"), 0o600))

	addr := freePort(t)

	app := fxtest.New(t,
		fx.Supply(slog.New(slog.DiscardHandler)),
		fx.Provide(provideLoader),
		NewModule(WithAddress(addr), WithFile(path)),
	)

	app.RequireStart()

	status, _, body := get(t, "http://"+addr+"/app.yaml?path=api")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "# generated by hjarta-conf\n\nport: 3000\n", body)

	app.RequireStop()
}

func TestNewModule_MissingFile(t *testing.T) {
	t.Parallel()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(slog.New(slog.DiscardHandler)),
		fx.Provide(provideLoader),
		NewModule(WithAddress(freePort(t))),
	)

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), ErrEmptyFile.Error())
}

func TestNewModule_MissingLoader(t *testing.T) {
	t.Parallel()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(slog.New(slog.DiscardHandler)),
		NewModule(WithAddress(freePort(t)), WithFile("app.ini")),
	)

	require.Error(t, app.Err())
}

package settings_test

import (
	"testing"

	"github.com/0xalexb/hjarta-conf/internal/cli/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	loaded, err := settings.Load(map[string]string{}, nil)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), loaded)
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	environ := map[string]string{
		"HJARTA_LOG_LEVEL":               "debug",
		"HJARTA_LOG_FORMAT":              "text",
		"HJARTA_SEPARATOR":               ":",
		"HJARTA_PROVENANCE":              "deploy-tool",
		"HJARTA_RENDER_WITHOUT_SECTIONS": "true",
		"HJARTA_RAW_SECTIONS":            "1",
		"LOG_LEVEL":                      "error",
	}

	loaded, err := settings.Load(environ, nil)
	require.NoError(t, err)

	expected := &settings.Settings{
		LogLevel:              "debug",
		LogFormat:             "text",
		Separator:             ":",
		Provenance:            "deploy-tool",
		RenderWithoutSections: true,
		RawSections:           true,
	}
	assert.Equal(t, expected, loaded)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Parallel()

	environ := map[string]string{
		"HJARTA_LOG_LEVEL": "debug",
		"HJARTA_SEPARATOR": ":",
	}
	flags := &settings.Settings{
		LogLevel:    "error",
		RawSections: true,
	}

	loaded, err := settings.Load(environ, flags)
	require.NoError(t, err)

	assert.Equal(t, "error", loaded.LogLevel)
	assert.Equal(t, ":", loaded.Separator)
	assert.True(t, loaded.RawSections)
	assert.Equal(t, "json", loaded.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		environ map[string]string
		flags   *settings.Settings
		target  error
	}{
		{
			name:    "invalid format from environment",
			environ: map[string]string{"HJARTA_LOG_FORMAT": "xml"},
			target:  settings.ErrInvalidLogFormat,
		},
		{
			name:    "invalid format from flags",
			environ: map[string]string{},
			flags:   &settings.Settings{LogFormat: "yaml"},
			target:  settings.ErrInvalidLogFormat,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			loaded, err := settings.Load(testCase.environ, testCase.flags)
			require.ErrorIs(t, err, testCase.target)
			assert.Nil(t, loaded)
		})
	}
}

func TestLoad_InvalidBoolean(t *testing.T) {
	t.Parallel()

	_, err := settings.Load(map[string]string{"HJARTA_RAW_SECTIONS": "maybe"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env settings")
}

func TestSettings_Adapters(t *testing.T) {
	t.Parallel()

	loaded, err := settings.Load(map[string]string{}, &settings.Settings{
		Separator:             "/",
		Provenance:            "test-suite",
		RenderWithoutSections: true,
	})
	require.NoError(t, err)

	adapters := loaded.Adapters()

	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		names = append(names, adapter.Name())
	}

	require.Equal(t, []string{"ini", "yaml", "lua", "toml"}, names)

	root, err := adapters[0].Decode([]byte("db/host = \"h\"\n"))
	require.NoError(t, err)

	data, err := adapters[0].Encode(root)
	require.NoError(t, err)
	assert.Equal(t, "; generated by test-suite\n\ndb/host = \"h\"\n", string(data))
}

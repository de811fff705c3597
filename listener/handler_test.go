package listener

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/adapter/ini"
	"github.com/0xalexb/hjarta-conf/config/adapter/toml"
	"github.com/0xalexb/hjarta-conf/config/adapter/yaml"
)

func newTestHandler(t *testing.T, content string) http.Handler {
	t.Helper()

	return newFileHandler(t, "app.ini", content)
}

func newFileHandler(t *testing.T, filename, content string) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader, err := config.NewLoader(nil, ini.New(), yaml.New(), toml.New())
	require.NoError(t, err)

	return NewHandler(loader, path, slog.New(slog.DiscardHandler))
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_ServesConvertedFile(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, "name = \"app\"\n[db]\nhost = \"h\"\nport = 5432\n")

	testCases := []struct {
		name        string
		target      string
		contentType string
		body        string
	}{
		{
			name:        "yaml",
			target:      "/app.yaml",
			contentType: "application/yaml",
			body:        "# generated by hjarta-conf\n\nname: app\ndb:\n  host: h\n  port: 5432\n",
		},
		{
			name:        "ini section",
			target:      "/app.ini?path=db",
			contentType: "text/plain; charset=utf-8",
			body:        "; generated by hjarta-conf\n\nhost = \"h\"\nport = 5432\n",
		},
		{
			name:        "yaml section",
			target:      "/anything.yml?path=db",
			contentType: "application/yaml",
			body:        "# generated by hjarta-conf\n\nhost: h\nport: 5432\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(handler, testCase.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, testCase.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, testCase.body, rec.Body.String())
		})
	}
}

func TestHandler_TOML(t *testing.T) {
	t.Parallel()

	rec := serve(newTestHandler(t, "[db]\nport = 5432\n"), "/app.toml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/toml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "port = 5432")
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, "name = \"app\"\nquote = 'say \"hi\"'\n[db]\nhost = \"h\"\n")

	testCases := []struct {
		name   string
		target string
		status int
	}{
		{name: "unsupported format", target: "/app.json", status: http.StatusNotFound},
		{name: "missing path", target: "/app.yaml?path=cache", status: http.StatusNotFound},
		{name: "path to scalar", target: "/app.yaml?path=name", status: http.StatusNotFound},
		{name: "unencodable value", target: "/app.ini", status: http.StatusUnprocessableEntity},
		{name: "root", target: "/", status: http.StatusNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(handler, testCase.target)
			assert.Equal(t, testCase.status, rec.Code)
		})
	}
}

func TestHandler_ServesYAMLSection(t *testing.T) {
	t.Parallel()

	handler := newFileHandler(t, "app.yaml", "name: app\napi:\n  limits:\n    rps: 100\n    burst: 20\n")

	rec := serve(handler, "/app.ini?path=api:limits")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "; generated by hjarta-conf\n\nrps = 100\nburst = 20\n", rec.Body.String())

	rec = serve(handler, "/app.ini?path=api:limits:rps")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(handler, "/app.ini?path=api:missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_BrokenFile(t *testing.T) {
	t.Parallel()

	rec := serve(newTestHandler(t, "[broken\n"), "/app.yaml")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "configuration unavailable\n", rec.Body.String())
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	rec := serve(newTestHandler(t, "a = 1\n"), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestLogging_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		status int
		level  string
	}{
		{name: "ok", status: http.StatusOK, level: "INFO"},
		{name: "not found", status: http.StatusNotFound, level: "WARN"},
		{name: "server error", status: http.StatusBadGateway, level: "ERROR"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
			}))

			serve(handler, "/app.ini")

			var entry map[string]any

			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, testCase.level, entry["level"])
			assert.Equal(t, "/app.ini", entry["path"])
			assert.InDelta(t, testCase.status, entry["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Recovery(logger)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	rec := serve(handler, "/app.ini")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "boom")
}

func TestRecovery_RepanicsOnAbortHandler(t *testing.T) {
	t.Parallel()

	handler := Recovery(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(handler, "/app.ini")
	})
}

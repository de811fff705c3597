package listener

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-conf/config"
)

// contentTypes maps adapter names to response media types.
//
//nolint:gochecknoglobals // read-only lookup table.
var contentTypes = map[string]string{
	"ini":  "text/plain; charset=utf-8",
	"yaml": "application/yaml",
	"lua":  "text/x-lua; charset=utf-8",
	"toml": "application/toml",
}

type handler struct {
	loader *config.Loader
	file   string
	logger *slog.Logger
}

// NewHandler returns a handler serving file through loader.
//
// GET /{name} loads file, narrows it to the colon-separated "path" query
// parameter when present, and encodes the result with the adapter matching
// name, so /app.yaml returns the file as YAML. The file is read on every
// request. GET /healthz answers "ok".
func NewHandler(loader *config.Loader, file string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &handler{
		loader: loader,
		file:   file,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /{name}", h.serveConfig)

	return Logging(logger)(Recovery(logger)(mux))
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, _ = w.Write([]byte("ok\n"))
}

func (h *handler) serveConfig(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	adapter, err := h.loader.Adapter(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	section, err := h.loader.LoadFileSection(h.file, r.URL.Query().Get("path"))
	if err != nil {
		if errors.Is(err, config.ErrPathNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}

		h.logger.Error("loading configuration failed", slog.String("file", h.file), slog.Any("error", err))
		http.Error(w, "configuration unavailable", http.StatusInternalServerError)

		return
	}

	data, err := adapter.Encode(section)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

		return
	}

	contentType, ok := contentTypes[adapter.Name()]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)

	_, _ = w.Write(data)
}

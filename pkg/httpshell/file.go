package httpshell

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileHandler replies with the contents of the file named by the "name" query
// parameter. Relative names resolve against the process working directory.
//
// Any file the process can read is served. Names are not cleaned or confined
// to a root directory.
type FileHandler struct {
	Logger *zerolog.Logger
}

func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, ok := ExtractQuery(requestTarget(r))["name"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(name)
	if err != nil {
		h.logger().Error().Err(err).Str("name", name).Msg("file: read failed")
		// Leave the diagnostic body untyped rather than letting net/http sniff it.
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	if ct, ok := ContentType(filepath.Ext(name)); ok {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header()["Content-Type"] = nil
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger().Error().Err(err).Str("name", name).Msg("file: write error")
	}
}

func (h *FileHandler) logger() *zerolog.Logger {
	if h.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return h.Logger
}

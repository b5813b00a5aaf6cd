package httpshell

import (
	"net/http"
	"runtime"
)

// InfoHandler replies with "<os> <arch>" of the host the server was built for.
type InfoHandler struct {
	body []byte
}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{body: []byte(runtime.GOOS + " " + runtime.GOARCH)}
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write(h.body)
}

package httpshell

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Router dispatches on substrings of the raw request target.
//
// Rules are checked in order and the first match wins:
//
//	method != GET            404
//	target contains /status  204
//	target contains /info    Info
//	target contains /sh      Command
//	target contains /file    File
//	anything else            404
//
// Matching is plain substring containment over the whole target, query
// included, so "/a/sh/b" and "/x?y=/info" both match.
type Router struct {
	Info    http.Handler
	Command http.Handler
	File    http.Handler
}

// NewRouter wires the stock handlers together around command.
// A nil command gets NewCommandHandler's defaults.
func NewRouter(logger *zerolog.Logger, command *CommandHandler) *Router {
	if command == nil {
		command = NewCommandHandler(logger)
	}
	return &Router{
		Info:    NewInfoHandler(),
		Command: command,
		File:    &FileHandler{Logger: logger},
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	target := requestTarget(r)
	switch {
	case strings.Contains(target, "/status"):
		w.WriteHeader(http.StatusNoContent)
	case strings.Contains(target, "/info"):
		rt.Info.ServeHTTP(w, r)
	case strings.Contains(target, "/sh"):
		rt.Command.ServeHTTP(w, r)
	case strings.Contains(target, "/file"):
		rt.File.ServeHTTP(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// requestTarget returns the target exactly as the client sent it.
func requestTarget(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

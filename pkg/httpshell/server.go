package httpshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// ErrInterrupted is returned by Serve when the context is cancelled.
// Callers treat it as a failed run and exit non-zero.
var ErrInterrupted = errors.New("interrupted")

var leavingColor = color.New(color.Bold, color.FgRed)

// ParsePort returns s as a port when it is a non-negative integer and 0,
// meaning any free port, otherwise.
func ParsePort(s string) int {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// Server owns the listener and the http.Server for one process run.
type Server struct {
	Port    int
	Handler http.Handler
	// Out receives the startup and shutdown lines.
	Out    io.Writer
	Logger *zerolog.Logger

	ln  net.Listener
	srv *http.Server
}

// Listen binds the configured port and announces the bound address on Out.
func (s *Server) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", s.Port, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.Handler}

	port := ln.Addr().(*net.TCPAddr).Port
	if s.Out != nil {
		fmt.Fprintf(s.Out, "Server: http://127.0.0.1:%d\n", port)
	}
	if s.Logger != nil {
		s.Logger.Info().Int("port", port).Msg("listening")
	}
	return ln.Addr(), nil
}

// Serve accepts connections until ctx is done or the listener fails.
// In-flight requests are not waited for. A cancelled ctx yields ErrInterrupted.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("serve called before listen")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(s.ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		if s.Out != nil {
			fmt.Fprintln(s.Out, leavingColor.Sprint("\n\n [+] Leaving"))
		}
		if err := s.srv.Close(); err != nil && s.Logger != nil {
			s.Logger.Warn().Err(err).Msg("close listener")
		}
		<-errc
		return ErrInterrupted
	}
}

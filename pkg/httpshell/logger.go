package httpshell

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var (
	methodColor = color.New(color.BgWhite, color.Bold, color.FgBlack)
	targetColor = color.New(color.FgBlue, color.Bold)
)

// RequestLogger prints one access line per request once the wrapped handler
// has returned:
//
//	[GET] - /sh?command=ls - 200 - 4ms
//
// It never touches the response.
type RequestLogger struct {
	Next   http.Handler
	Out    io.Writer
	Logger *zerolog.Logger
}

// LogRequests wraps next with a RequestLogger writing to out.
func LogRequests(next http.Handler, out io.Writer, logger *zerolog.Logger) *RequestLogger {
	return &RequestLogger{Next: next, Out: out, Logger: logger}
}

func (l *RequestLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w}

	l.Next.ServeHTTP(rec, r)

	elapsed := time.Since(start).Milliseconds()
	status := rec.Status()
	target := requestTarget(r)

	if l.Out != nil {
		fmt.Fprintf(l.Out, "%s - %s - %d - %dms\n",
			methodColor.Sprintf("[%s]", r.Method),
			targetColor.Sprint(target),
			status,
			elapsed,
		)
	}
	if l.Logger != nil {
		l.Logger.Debug().
			Str("method", r.Method).
			Str("target", target).
			Int("status", status).
			Int64("elapsed_ms", elapsed).
			Str("remote", r.RemoteAddr).
			Msg("request")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// Status is the code sent to the client, 200 if the handler never set one.
func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

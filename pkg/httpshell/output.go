package httpshell

import (
	"encoding/json"
	"errors"
	"net/http"
	"os/exec"
	"syscall"
)

// OutputHandler writes the response for a finished command.
// By the time it is called the child has exited and res holds all of its output.
type OutputHandler func(w http.ResponseWriter, r *http.Request, h *CommandHandler, res *Result)

// Failure kinds reported in CommandError.Kind.
const (
	KindLaunch    = "launch"
	KindExit      = "exit"
	KindStderr    = "stderr"
	KindMaxBuffer = "maxbuffer"
)

// CommandError is the JSON body sent when a command fails.
type CommandError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Cmd     string `json:"cmd"`
	Code    *int   `json:"code,omitempty"`
	Signal  string `json:"signal,omitempty"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewCommandError classifies res. It returns nil when the command succeeded,
// that is it exited zero and wrote nothing to stderr. Output on stderr is a
// failure even when the exit status is zero.
func NewCommandError(res *Result) *CommandError {
	if res.Err == nil && len(res.Stderr) == 0 {
		return nil
	}

	ce := &CommandError{
		Cmd:    res.Command,
		Stdout: string(res.Stdout),
		Stderr: string(res.Stderr),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(res.Err, ErrMaxBuffer):
		ce.Kind = KindMaxBuffer
		ce.Message = res.Err.Error()
	case errors.As(res.Err, &exitErr):
		ce.Kind = KindExit
		ce.Message = "Command failed: " + res.Command
		if len(res.Stderr) > 0 {
			ce.Message += "\n" + string(res.Stderr)
		}
		if code := exitErr.ExitCode(); code >= 0 {
			ce.Code = &code
		}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			ce.Signal = ws.Signal().String()
		}
	case res.Err != nil:
		ce.Kind = KindLaunch
		ce.Message = res.Err.Error()
	default:
		ce.Kind = KindStderr
		ce.Message = string(res.Stderr)
	}
	return ce
}

// DefaultOutputHandler replies 200 text/plain with stdout on success and
// 400 application/json with a CommandError otherwise.
var DefaultOutputHandler OutputHandler = func(w http.ResponseWriter, r *http.Request, h *CommandHandler, res *Result) {
	ce := NewCommandError(res)
	if ce == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(res.Stdout); err != nil {
			h.logger().Error().Err(err).Msg("sh: write error")
		}
		return
	}

	body, err := json.Marshal(ce)
	if err != nil {
		// CommandError only holds strings and an int.
		body = []byte(`{"kind":"` + ce.Kind + `"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if _, err := w.Write(body); err != nil {
		h.logger().Error().Err(err).Msg("sh: write error")
	}
}

package httpshell

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultMaxBuffer is the per-stream output cap used when a CommandHandler is
// built with NewCommandHandler.
const DefaultMaxBuffer = 1024 * 1024

// CommandHandler runs the "command" query parameter through a shell and
// replies with what the command printed.
//
// The command string is handed to the shell verbatim. There is no escaping,
// allow-list or sandbox: anyone who can reach the handler can run anything the
// process user can.
type CommandHandler struct {
	// Shell is the interpreter the command is passed to, e.g. /bin/sh.
	Shell string
	// ShellFlag precedes the command in the shell's argument list, e.g. -c.
	ShellFlag string

	// Dir is the working directory of the child. Empty means the current one.
	Dir string

	// MaxBuffer caps stdout and stderr separately. A child that writes more is
	// killed. Zero means no cap.
	MaxBuffer int

	Logger *zerolog.Logger

	// OutputHandler turns a finished Result into a response.
	// DefaultOutputHandler is used when nil.
	OutputHandler OutputHandler
}

// Result is everything collected from one command run.
type Result struct {
	Command string
	Stdout  []byte
	Stderr  []byte
	// Err is non-nil when the child could not be started, exited non-zero,
	// was killed or overflowed MaxBuffer.
	Err error
}

// ErrMaxBuffer is reported through Result.Err when a stream exceeds MaxBuffer.
var ErrMaxBuffer = errors.New("output exceeded max buffer")

// NewCommandHandler returns a CommandHandler using the platform's default shell.
func NewCommandHandler(logger *zerolog.Logger) *CommandHandler {
	shell, flag := DefaultShell()
	return &CommandHandler{
		Shell:     shell,
		ShellFlag: flag,
		MaxBuffer: DefaultMaxBuffer,
		Logger:    logger,
	}
}

// DefaultShell returns the shell and command flag used when none is configured.
func DefaultShell() (string, string) {
	if runtime.GOOS == "windows" {
		comspec := os.Getenv("COMSPEC")
		if comspec == "" {
			comspec = "cmd.exe"
		}
		return comspec, "/c"
	}
	return "/bin/sh", "-c"
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	command, ok := ExtractQuery(requestTarget(r))["command"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res := h.Run(command)

	oh := h.OutputHandler
	if oh == nil {
		oh = DefaultOutputHandler
	}
	oh(w, r, h, res)
}

// Run executes command and blocks until the child has exited and both of its
// output streams are drained.
func (h *CommandHandler) Run(command string) *Result {
	res := &Result{Command: command}

	shell, flag := h.Shell, h.ShellFlag
	if shell == "" {
		shell, flag = DefaultShell()
	}
	args := []string{command}
	if flag != "" {
		args = []string{flag, command}
	}

	cmd := exec.Command(shell, args...)
	cmd.Dir = h.Dir

	var (
		once     sync.Once
		overflow bool
	)
	kill := func() {
		once.Do(func() {
			overflow = true
			if cmd.Process != nil {
				cmd.Process.Kill()
			}
		})
	}
	stdout := &cappedBuffer{max: h.MaxBuffer, onOverflow: kill}
	stderr := &cappedBuffer{max: h.MaxBuffer, onOverflow: kill}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	if overflow {
		err = fmt.Errorf("%s: %w", command, ErrMaxBuffer)
	}
	res.Err = err

	if err != nil || len(res.Stderr) > 0 {
		h.logger().Debug().
			Str("command", command).
			Err(err).
			Int("stderr_bytes", len(res.Stderr)).
			Msg("command failed")
	}
	return res
}

func (h *CommandHandler) logger() *zerolog.Logger {
	if h.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return h.Logger
}

// cappedBuffer collects output until max bytes have been written, then calls
// onOverflow once and rejects further writes.
type cappedBuffer struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	max        int
	onOverflow func()
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && b.buf.Len()+len(p) > b.max {
		b.buf.Write(p[:b.max-b.buf.Len()])
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return 0, ErrMaxBuffer
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}

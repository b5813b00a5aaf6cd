package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelreyna/http-shell/pkg/config"
	"github.com/raphaelreyna/http-shell/pkg/httpshell"
	"github.com/raphaelreyna/http-shell/pkg/logging"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

var (
	configPath string

	shell     string
	shellFlag string
	dir       string
	maxBuffer int

	quiet   bool
	debug   bool
	logFile string
)

// NewRootCmd creates the http-shell command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "http-shell [flags] [port]",
		Version: version,
		Short:   "An unauthenticated HTTP endpoint for running commands and fetching files.",
		Long: `Start an HTTP server exposing four GET routes:

  /status            204, no body
  /info              "<os> <arch>"
  /sh?command=...    run a command through the shell, reply with its stdout
  /file?name=...     reply with the contents of a file

There is no authentication and no sandboxing: anyone who can reach the port can
run any command and read any file the server's user can. Use it only on
networks you control.

If port is missing or not a number, the OS picks a free one.
Any run ends with exit status 1, including shutdown on SIGINT or SIGTERM.
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file.")

	rootCmd.Flags().StringVarP(&shell, "shell", "s", "", `Shell that /sh commands are passed to.
Defaults to /bin/sh (cmd.exe on Windows).`)
	rootCmd.Flags().StringVar(&shellFlag, "shell-flag", "", `Argument placed before the command, -c by default (/c on Windows).`)
	rootCmd.Flags().StringVarP(&dir, "dir", "d", "", `Working directory for commands.
Defaults to where http-shell was called.`)
	rootCmd.Flags().IntVar(&maxBuffer, "max-buffer", httpshell.DefaultMaxBuffer,
		`Maximum bytes captured per output stream before the command is killed. 0 disables the limit.`)

	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Don't show diagnostic log messages.")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging.")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file, rotating it as it grows.")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.LoadDefault()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}
		cfg = loaded
	}
	applyFlags(cmd, cfg)

	logging.InitGlobalLogger(cfg.Logging)
	logger := logging.WithComponent("server")

	command := httpshell.NewCommandHandler(logging.WithComponent("sh"))
	if cfg.Command.Shell != "" {
		command.Shell = cfg.Command.Shell
	}
	if cfg.Command.ShellFlag != "" {
		command.ShellFlag = cfg.Command.ShellFlag
	}
	command.Dir = cfg.Command.Dir
	command.MaxBuffer = cfg.Command.MaxBuffer

	router := httpshell.NewRouter(logging.WithComponent("router"), command)

	var portArg string
	if len(args) > 0 {
		portArg = args[0]
	}

	srv := &httpshell.Server{
		Port:    httpshell.ParsePort(cfg.ResolvePort(portArg)),
		Handler: httpshell.LogRequests(router, cmd.OutOrStdout(), logging.WithComponent("access")),
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := srv.Listen(); err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	return srv.Serve(ctx)
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("shell") {
		cfg.Command.Shell = shell
	}
	if flags.Changed("shell-flag") {
		cfg.Command.ShellFlag = shellFlag
	}
	if flags.Changed("dir") {
		cfg.Command.Dir = dir
	}
	if flags.Changed("max-buffer") {
		cfg.Command.MaxBuffer = maxBuffer
	}
	if flags.Changed("quiet") {
		cfg.Logging.Quiet = quiet
	}
	if flags.Changed("debug") {
		cfg.Logging.Debug = debug
	}
	if flags.Changed("log-file") {
		cfg.Logging.LogToFile = logFile != ""
		cfg.Logging.LogFilePath = logFile
	}
}

package logging

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/raphaelreyna/http-shell/pkg/config"
	"github.com/rs/zerolog"
)

var (
	// Global logger instance
	globalLogger = zerolog.Nop()
)

// Output picks where diagnostics go for cfg.
// Quiet discards everything. With file logging enabled, logs go to a rotating
// file, and to stderr as well in debug mode. Otherwise they go to stderr.
func Output(cfg config.LogConfig) io.Writer {
	if cfg.Quiet {
		return io.Discard
	}
	if !cfg.LogToFile {
		return os.Stderr
	}

	fileLogger := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if cfg.Debug {
		return io.MultiWriter(fileLogger, os.Stderr)
	}
	return fileLogger
}

// InitGlobalLogger initializes the global logger from cfg
func InitGlobalLogger(cfg config.LogConfig) {
	globalLogger = NewLogger(cfg.Debug, Output(cfg))
	if cfg.LogToFile && !cfg.Quiet {
		globalLogger.Info().Str("path", cfg.LogFilePath).Msg("logging to file")
	}
}

// NewLogger creates a new zerolog logger with the specified debug level
func NewLogger(debug bool, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stderr
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	return globalLogger
}

// WithComponent returns a logger with the component field set
func WithComponent(component string) *zerolog.Logger {
	l := globalLogger.With().Str("component", component).Logger()
	return &l
}

package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raphaelreyna/http-shell/pkg/config"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(true, &buf)

	for _, level := range []string{"debug", "info", "warn", "error"} {
		buf.Reset()
		switch level {
		case "debug":
			logger.Debug().Msg(level + " message")
		case "info":
			logger.Info().Msg(level + " message")
		case "warn":
			logger.Warn().Msg(level + " message")
		case "error":
			logger.Error().Msg(level + " message")
		}
		output := buf.String()
		if !strings.Contains(output, level+" message") {
			t.Errorf("%s log should contain '%s message', got: %s", level, level, output)
		}
		if !strings.Contains(output, `"level":"`+level+`"`) {
			t.Errorf("%s log should have %s level, got: %s", level, level, output)
		}
	}
}

func TestDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false, &buf)

	logger.Debug().Msg("debug message")
	if strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug log should not be visible when debug is disabled, got: %s", buf.String())
	}

	logger.Info().Msg("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("Info log should be visible when debug is disabled, got: %s", buf.String())
	}
}

func TestTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(true, &buf)
	logger.Info().Msg("timestamp test")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v", err)
	}
	timestamp, ok := logEntry["time"].(string)
	if !ok {
		t.Fatalf("Log entry should contain a timestamp field")
	}
	if _, err := time.Parse(time.RFC3339, timestamp); err != nil {
		t.Errorf("Timestamp should be in RFC3339 format, got: %s", timestamp)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	globalLogger = NewLogger(true, &buf)

	WithComponent("router").Info().Msg("contextual log message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v", err)
	}
	if component, ok := logEntry["component"].(string); !ok || component != "router" {
		t.Errorf("Expected component field to be 'router', got: %v", logEntry["component"])
	}
}

func TestOutput(t *testing.T) {
	if Output(config.LogConfig{Quiet: true, LogToFile: true}) != io.Discard {
		t.Errorf("Quiet should discard logs")
	}
	if Output(config.LogConfig{}) != os.Stderr {
		t.Errorf("Default output should be stderr")
	}
}

func TestInitGlobalLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "http-shell.log")
	InitGlobalLogger(config.LogConfig{
		LogToFile:   true,
		LogFilePath: path,
		MaxSize:     1,
	})
	defer func() { globalLogger = NewLogger(false, io.Discard) }()

	l := GetLogger()
	l.Info().Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Log file should contain the message, got: %s", data)
	}
}

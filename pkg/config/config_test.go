package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelreyna/http-shell/pkg/httpshell"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	// Valid configuration file
	validConfigPath := filepath.Join(tempDir, "valid-config.yaml")
	validConfigContent := `
port: "8088"
command:
  shell: /bin/bash
  shell_flag: -lc
  dir: /tmp
  max_buffer: 2048
logging:
  debug: true
  log_to_file: true
  log_file_path: /var/log/http-shell.log
  max_size: 50
`
	if err := os.WriteFile(validConfigPath, []byte(validConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write valid config file: %v", err)
	}

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	if cfg.Port != "8088" {
		t.Errorf("Expected port '8088', got '%s'", cfg.Port)
	}
	if cfg.Command.Shell != "/bin/bash" {
		t.Errorf("Expected shell '/bin/bash', got '%s'", cfg.Command.Shell)
	}
	if cfg.Command.ShellFlag != "-lc" {
		t.Errorf("Expected shell flag '-lc', got '%s'", cfg.Command.ShellFlag)
	}
	if cfg.Command.Dir != "/tmp" {
		t.Errorf("Expected dir '/tmp', got '%s'", cfg.Command.Dir)
	}
	if cfg.Command.MaxBuffer != 2048 {
		t.Errorf("Expected max buffer 2048, got %d", cfg.Command.MaxBuffer)
	}
	if !cfg.Logging.Debug || !cfg.Logging.LogToFile {
		t.Errorf("Expected debug and file logging enabled, got %+v", cfg.Logging)
	}
	if cfg.Logging.LogFilePath != "/var/log/http-shell.log" {
		t.Errorf("Expected log path '/var/log/http-shell.log', got '%s'", cfg.Logging.LogFilePath)
	}
	if cfg.Logging.MaxSize != 50 {
		t.Errorf("Expected max size 50, got %d", cfg.Logging.MaxSize)
	}
	// Not set in the file, so the default stays
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Expected default max backups 3, got %d", cfg.Logging.MaxBackups)
	}

	// Negative max buffer disables the cap
	uncappedPath := filepath.Join(tempDir, "uncapped.yaml")
	if err := os.WriteFile(uncappedPath, []byte("command:\n  max_buffer: -1\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	uncapped, err := Load(uncappedPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if uncapped.Command.MaxBuffer != 0 {
		t.Errorf("Expected max buffer 0, got %d", uncapped.Command.MaxBuffer)
	}

	// Invalid configuration file
	invalidConfigPath := filepath.Join(tempDir, "invalid-config.yaml")
	if err := os.WriteFile(invalidConfigPath, []byte("command:\n  - shell\ninvalid yaml format\n"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config file: %v", err)
	}
	if _, err := Load(invalidConfigPath); err == nil {
		t.Errorf("Expected error when loading invalid config, got nil")
	}

	// Non-existent file
	if _, err := Load(filepath.Join(tempDir, "non-existent.yaml")); err == nil {
		t.Errorf("Expected error when loading non-existent file, got nil")
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg := LoadDefault()

	if cfg.Port != "" {
		t.Errorf("Expected empty default port, got '%s'", cfg.Port)
	}
	if cfg.Command.Shell != "" {
		t.Errorf("Expected empty default shell, got '%s'", cfg.Command.Shell)
	}
	if cfg.Command.MaxBuffer != httpshell.DefaultMaxBuffer {
		t.Errorf("Expected default max buffer %d, got %d", httpshell.DefaultMaxBuffer, cfg.Command.MaxBuffer)
	}
	if cfg.Logging.LogToFile || cfg.Logging.Quiet || cfg.Logging.Debug {
		t.Errorf("Expected stderr info logging by default, got %+v", cfg.Logging)
	}
}

func TestResolvePort(t *testing.T) {
	cfg := LoadDefault()
	cfg.Port = "7000"

	t.Setenv(PortEnv, "")
	if got := cfg.ResolvePort(""); got != "7000" {
		t.Errorf("Expected config port '7000', got '%s'", got)
	}

	t.Setenv(PortEnv, "7100")
	if got := cfg.ResolvePort(""); got != "7100" {
		t.Errorf("Expected env port '7100', got '%s'", got)
	}
	if got := cfg.ResolvePort("7200"); got != "7200" {
		t.Errorf("Expected argument port '7200', got '%s'", got)
	}
	if got := cfg.ResolvePort("nope"); got != "nope" {
		t.Errorf("Expected argument to win even when not numeric, got '%s'", got)
	}
}

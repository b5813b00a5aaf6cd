package config

import (
	"fmt"
	"os"

	"github.com/raphaelreyna/http-shell/pkg/httpshell"
	"gopkg.in/yaml.v3"
)

// PortEnv names the environment variable consulted when no port argument is given.
const PortEnv = "HTTP_SHELL_PORT"

// Config represents the server configuration
type Config struct {
	// Port is kept as text; anything that is not a non-negative integer
	// means "let the OS pick".
	Port    string        `yaml:"port"`
	Command CommandConfig `yaml:"command"`
	Logging LogConfig     `yaml:"logging"`
}

// CommandConfig controls how /sh runs commands
type CommandConfig struct {
	Shell     string `yaml:"shell"`      // empty means the platform default
	ShellFlag string `yaml:"shell_flag"` // argument placed before the command
	Dir       string `yaml:"dir"`
	MaxBuffer int    `yaml:"max_buffer"` // bytes per stream, 0 disables the cap
}

// LogConfig contains settings for diagnostic logging
type LogConfig struct {
	Debug       bool   `yaml:"debug"`
	Quiet       bool   `yaml:"quiet"`
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // megabytes
	MaxBackups  int    `yaml:"max_backups"` // old files to keep
	MaxAge      int    `yaml:"max_age"`     // days
	Compress    bool   `yaml:"compress"`
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	return &Config{
		Command: CommandConfig{
			MaxBuffer: httpshell.DefaultMaxBuffer,
		},
		Logging: LogConfig{
			LogFilePath: "http-shell.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Load reads configuration from a file and merges it with default values
func Load(configPath string) (*Config, error) {
	cfg := LoadDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Port != "" {
		cfg.Port = fileCfg.Port
	}

	if fileCfg.Command.Shell != "" {
		cfg.Command.Shell = fileCfg.Command.Shell
	}
	if fileCfg.Command.ShellFlag != "" {
		cfg.Command.ShellFlag = fileCfg.Command.ShellFlag
	}
	if fileCfg.Command.Dir != "" {
		cfg.Command.Dir = fileCfg.Command.Dir
	}
	// Negative turns the cap off; zero keeps the default.
	if fileCfg.Command.MaxBuffer > 0 {
		cfg.Command.MaxBuffer = fileCfg.Command.MaxBuffer
	} else if fileCfg.Command.MaxBuffer < 0 {
		cfg.Command.MaxBuffer = 0
	}

	if fileCfg.Logging.Debug {
		cfg.Logging.Debug = true
	}
	if fileCfg.Logging.Quiet {
		cfg.Logging.Quiet = true
	}
	if fileCfg.Logging.LogToFile {
		cfg.Logging.LogToFile = true
	}
	if fileCfg.Logging.LogFilePath != "" {
		cfg.Logging.LogFilePath = fileCfg.Logging.LogFilePath
	}
	if fileCfg.Logging.MaxSize > 0 {
		cfg.Logging.MaxSize = fileCfg.Logging.MaxSize
	}
	if fileCfg.Logging.MaxBackups > 0 {
		cfg.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	if fileCfg.Logging.MaxAge > 0 {
		cfg.Logging.MaxAge = fileCfg.Logging.MaxAge
	}
	if fileCfg.Logging.Compress {
		cfg.Logging.Compress = true
	}

	return cfg, nil
}

// ResolvePort picks the port text: an explicit argument first, then the
// PortEnv environment variable, then the config file value.
func (c *Config) ResolvePort(arg string) string {
	if arg != "" {
		return arg
	}
	if env := os.Getenv(PortEnv); env != "" {
		return env
	}
	return c.Port
}

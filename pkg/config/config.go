// Package config handles loading and managing riskscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDataDir  = "RISKSCOPE_DATA_DIR"
	EnvBackend  = "RISKSCOPE_BACKEND"
	EnvLogLevel = "RISKSCOPE_LOG_LEVEL"
)

// Config is the top-level configuration for riskscope.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// HistoryConfig controls where past submissions are kept.
type HistoryConfig struct {
	Backend string `yaml:"backend"` // bolt, sqlite or file
	Dir     string `yaml:"dir"`     // default: DataDir()
	Key     string `yaml:"key"`
}

// ServerConfig controls the local API server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // text or json
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Backend: "bolt",
			Dir:     DataDir(),
			Key:     "analysisHistory",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7700",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = DataDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file settings with RISKSCOPE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.History.Dir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.History.Backend {
	case "bolt", "sqlite", "file":
	default:
		return fmt.Errorf("invalid history backend %q (want bolt, sqlite or file)", c.History.Backend)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (want text or json)", c.Output.Format)
	}
	if c.History.Dir == "" {
		return fmt.Errorf("history dir must not be empty")
	}
	if c.History.Key == "" {
		return fmt.Errorf("history key must not be empty")
	}
	return nil
}

// FindConfigFile looks for .riskscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".riskscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DataDir returns the directory holding local state, ~/.cache/riskscope.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "riskscope")
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Config represents the orgparse configuration
type Config struct {
	NotesDir        string        `json:"notes_dir"`
	LogFile         string        `json:"log_file"`
	ParseTimeout    time.Duration `json:"-"` // Custom JSON handling below
	MaxFileSize     int64         `json:"max_file_size"`
	Workers         int           `json:"workers"`
	Extensions      []string      `json:"extensions,omitempty"`
	ExcludePatterns []string      `json:"exclude_patterns,omitempty"`
}

// fileConfig is the on-disk shape, with the timeout as a duration string
type fileConfig struct {
	NotesDir        string   `json:"notes_dir"`
	LogFile         string   `json:"log_file"`
	ParseTimeout    string   `json:"parse_timeout"`
	MaxFileSize     int64    `json:"max_file_size"`
	Workers         int      `json:"workers"`
	Extensions      []string `json:"extensions,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		NotesDir:        filepath.Join(home, "org"),
		LogFile:         filepath.Join(os.TempDir(), "orgparse.log"),
		ParseTimeout:    5 * time.Second,
		MaxFileSize:     4 << 20,
		Workers:         4,
		Extensions:      []string{".org"},
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "orgparse", "config.json")
	}
	return filepath.Join(home, ".config", "orgparse", "config.json")
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.ExpandPaths(); err != nil {
				return nil, fmt.Errorf("failed to expand paths: %w", err)
			}
			return cfg, nil
		}
		return nil, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.NotesDir != "" {
		cfg.NotesDir = raw.NotesDir
	}
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.ParseTimeout != "" {
		timeout, err := time.ParseDuration(raw.ParseTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid parse_timeout format '%s': %w", raw.ParseTimeout, err)
		}
		cfg.ParseTimeout = timeout
	}
	if raw.MaxFileSize != 0 {
		cfg.MaxFileSize = raw.MaxFileSize
	}
	if raw.Workers != 0 {
		cfg.Workers = raw.Workers
	}
	if raw.Extensions != nil {
		cfg.Extensions = raw.Extensions
	}
	if raw.ExcludePatterns != nil {
		cfg.ExcludePatterns = raw.ExcludePatterns
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := fileConfig{
		NotesDir:        c.NotesDir,
		LogFile:         c.LogFile,
		ParseTimeout:    c.ParseTimeout.String(),
		MaxFileSize:     c.MaxFileSize,
		Workers:         c.Workers,
		Extensions:      c.Extensions,
		ExcludePatterns: c.ExcludePatterns,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.ParseTimeout <= 0 {
		return fmt.Errorf("parse_timeout must be positive")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension '%s': must start with a dot", ext)
		}
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.NotesDir, err = expandPath(c.NotesDir)
	if err != nil {
		return fmt.Errorf("failed to expand notes_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}

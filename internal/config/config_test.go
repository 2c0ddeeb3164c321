package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NotesDir == "" {
		t.Error("Expected NotesDir to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.ParseTimeout != 5*time.Second {
		t.Errorf("Expected ParseTimeout to be 5s, got %v", cfg.ParseTimeout)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".org" {
		t.Errorf("Expected extensions [.org], got %v", cfg.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			NotesDir:     "/path/to/org",
			LogFile:      "/tmp/test.log",
			ParseTimeout: time.Second,
			MaxFileSize:  1024,
			Workers:      2,
			Extensions:   []string{".org"},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "empty notes_dir", modify: func(c *Config) { c.NotesDir = "" }, wantErr: true},
		{name: "empty log_file", modify: func(c *Config) { c.LogFile = "" }, wantErr: true},
		{name: "zero timeout", modify: func(c *Config) { c.ParseTimeout = 0 }, wantErr: true},
		{name: "negative timeout", modify: func(c *Config) { c.ParseTimeout = -time.Second }, wantErr: true},
		{name: "zero max size", modify: func(c *Config) { c.MaxFileSize = 0 }, wantErr: true},
		{name: "no workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "no extensions", modify: func(c *Config) { c.Extensions = nil }, wantErr: true},
		{name: "extension without dot", modify: func(c *Config) { c.Extensions = []string{"org"} }, wantErr: true},
		{name: "bad exclude pattern", modify: func(c *Config) { c.ExcludePatterns = []string{"[a-"} }, wantErr: true},
		{name: "good exclude pattern", modify: func(c *Config) { c.ExcludePatterns = []string{"*.archive.org"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	testCfg := &Config{
		NotesDir:        "/test/org",
		LogFile:         "/tmp/orgparse-test.log",
		ParseTimeout:    250 * time.Millisecond,
		MaxFileSize:     2048,
		Workers:         8,
		Extensions:      []string{".org", ".org_archive"},
		ExcludePatterns: []string{"*.tmp.org"},
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.ParseTimeout != testCfg.ParseTimeout {
		t.Errorf("ParseTimeout mismatch: got %v, want %v", loadedCfg.ParseTimeout, testCfg.ParseTimeout)
	}
	if loadedCfg.Workers != 8 {
		t.Errorf("Workers mismatch: got %d, want 8", loadedCfg.Workers)
	}
	if loadedCfg.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize mismatch: got %d, want 2048", loadedCfg.MaxFileSize)
	}
	if len(loadedCfg.Extensions) != 2 {
		t.Errorf("Extensions mismatch: got %v", loadedCfg.Extensions)
	}
	if loadedCfg.NotesDir != "/test/org" {
		t.Errorf("NotesDir mismatch: got %s", loadedCfg.NotesDir)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	if err := os.WriteFile(testConfigPath, []byte(`{"notes_dir": "/srv/notes"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NotesDir != "/srv/notes" {
		t.Errorf("Expected notes_dir from file, got %s", cfg.NotesDir)
	}
	if cfg.Workers != DefaultConfig().Workers {
		t.Errorf("Expected default workers, got %d", cfg.Workers)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	if err := os.WriteFile(testConfigPath, []byte(`{"parse_timeout": "soon"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid parse_timeout")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "nonexistent.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.ParseTimeout != 5*time.Second {
		t.Errorf("Expected default timeout 5s, got %v", cfg.ParseTimeout)
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde expansion", input: "~/test", want: filepath.Join(homeDir, "test")},
		{name: "tilde only", input: "~", want: homeDir},
		{name: "absolute path", input: "/tmp/test", want: "/tmp/test"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.want)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "config.json"))

	testCfg := DefaultConfig()
	testCfg.NotesDir = "~/org"
	testCfg.LogFile = "~/orgparse.log"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.NotesDir[0] == '~' {
		t.Error("NotesDir was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}

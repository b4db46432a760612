package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"docdist/internal/config"
	"docdist/internal/textutil"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "docdist", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantHistory := filepath.Join(tempHome, ".local", "share", "docdist", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Output.Precision != 6 {
		t.Fatalf("expected precision 6, got %d", cfg.Output.Precision)
	}
	if cfg.TokenPolicy() != textutil.PolicyASCII {
		t.Fatalf("expected ascii policy, got %v", cfg.TokenPolicy())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "config.toml")
	content := `
[tokenizer]
policy = "Unicode"

[output]
precision = 3

[logging]
format = "JSON"
level = "DEBUG"
file = "~/logs/docdist.log"

[history]
enabled = false
path = "~/data/history.db"
keep_rows = 10
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.TokenPolicy() != textutil.PolicyUnicode {
		t.Fatalf("expected unicode policy, got %q", cfg.Tokenizer.Policy)
	}
	if cfg.Output.Precision != 3 {
		t.Fatalf("unexpected precision %d", cfg.Output.Precision)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(tempHome, "logs", "docdist.log") {
		t.Fatalf("unexpected log file %q", cfg.Logging.File)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
	if cfg.History.Path != filepath.Join(tempHome, "data", "history.db") {
		t.Fatalf("unexpected history path %q", cfg.History.Path)
	}
	if cfg.History.KeepRows != 10 {
		t.Fatalf("unexpected keep_rows %d", cfg.History.KeepRows)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOCDIST_TOKEN_POLICY", "unicode")
	t.Setenv("DOCDIST_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tokenizer.Policy != "unicode" {
		t.Fatalf("expected env policy, got %q", cfg.Tokenizer.Policy)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad policy", "[tokenizer]\npolicy = \"latin1\"\n", "tokenizer.policy"},
		{"bad precision", "[output]\nprecision = 40\n", "output.precision"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"chatty\"\n", "logging.level"},
		{"negative keep rows", "[history]\nkeep_rows = -1\n", "history.keep_rows"},
		{"unknown key", "[output]\ncolour = true\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if decoded.Output.Precision != config.Default().Output.Precision {
		t.Fatalf("sample precision %d differs from default", decoded.Output.Precision)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(sample): %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Tokenizer.Policy != "ascii" {
		t.Fatalf("unexpected sample policy %q", cfg.Tokenizer.Policy)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(base, "db", "history.db")
	cfg.Logging.File = filepath.Join(base, "logs", "docdist.log")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{filepath.Join(base, "db"), filepath.Join(base, "logs")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/docs/a.txt")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "docs", "a.txt") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if empty, _ := config.ExpandPath(""); empty != "" {
		t.Fatalf("ExpandPath(\"\") = %q", empty)
	}
}

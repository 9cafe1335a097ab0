package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"slidedeck/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"SLIDEDECK_SERVER_URL",
		"SLIDEDECK_EXPORT_DIR",
		"SLIDEDECK_LOG_LEVEL",
		"SLIDEDECK_CLEAR_TITLES_ON_SELECT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfig(t *testing.T) {
	isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if got := cfg.ExtractURL(); got != "http://localhost:8000/api/extract-titles" {
		t.Fatalf("unexpected extract url %q", got)
	}
	if got := cfg.FeedbackURL(); got != "http://localhost:8000/api/get-feedback" {
		t.Fatalf("unexpected feedback url %q", got)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.RequestTimeout())
	}
	if cfg.Workflow.ClearTitlesOnSelect {
		t.Fatal("expected titles to survive selection by default")
	}
	if !filepath.IsAbs(cfg.Export.Dir) {
		t.Fatalf("expected absolute export dir, got %q", cfg.Export.Dir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	home := isolate(t)

	payload := map[string]any{
		"service": map[string]any{
			"base_url":        "https://slides.example.com/",
			"extract_path":    "v2/extract",
			"timeout_seconds": 5,
		},
		"export":   map[string]any{"dir": "~/exports"},
		"workflow": map[string]any{"clear_titles_on_select": true},
		"logging":  map[string]any{"format": "JSON", "level": "DEBUG"},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if got := cfg.ExtractURL(); got != "https://slides.example.com/v2/extract" {
		t.Fatalf("unexpected extract url %q", got)
	}
	if got := cfg.FeedbackURL(); got != "https://slides.example.com/api/get-feedback" {
		t.Fatalf("unexpected feedback url %q", got)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if cfg.Export.Dir != filepath.Join(home, "exports") {
		t.Fatalf("unexpected export dir %q", cfg.Export.Dir)
	}
	if !cfg.Workflow.ClearTitlesOnSelect {
		t.Fatal("expected clear_titles_on_select to be honoured")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	exportDir := t.TempDir()
	t.Setenv("SLIDEDECK_SERVER_URL", "http://10.0.0.5:9000/")
	t.Setenv("SLIDEDECK_EXPORT_DIR", exportDir)
	t.Setenv("SLIDEDECK_CLEAR_TITLES_ON_SELECT", "true")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.BaseURL != "http://10.0.0.5:9000" {
		t.Fatalf("expected env base url, got %q", cfg.Service.BaseURL)
	}
	if cfg.Export.Dir != exportDir {
		t.Fatalf("expected env export dir, got %q", cfg.Export.Dir)
	}
	if !cfg.Workflow.ClearTitlesOnSelect {
		t.Fatal("expected env toggle to apply")
	}
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { _ = os.Unsetenv("SLIDEDECK_SERVER_URL") })
	_ = os.Unsetenv("SLIDEDECK_SERVER_URL")
	if err := os.WriteFile(".env", []byte("SLIDEDECK_SERVER_URL=http://dotenv.local:8123\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.BaseURL != "http://dotenv.local:8123" {
		t.Fatalf("expected .env base url, got %q", cfg.Service.BaseURL)
	}
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	cases := []string{"ftp://example.com", "http://", "not a url"}
	for _, value := range cases {
		cfg := config.Default()
		cfg.Service.BaseURL = value
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %q", value)
		}
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "chatty"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level error, got %v", err)
	}
}

func TestValidateRejectsNegativeRetention(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.RetentionDays = -1
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "logging.retention_days") {
		t.Fatalf("expected logging.retention_days error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Service.TimeoutSeconds != 30 {
		t.Fatalf("unexpected sample timeout %d", cfg.Service.TimeoutSeconds)
	}
}

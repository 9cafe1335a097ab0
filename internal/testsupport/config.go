package testsupport

import (
	"path/filepath"
	"testing"

	"slidedeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Export.Dir = filepath.Join(base, "exports")
	cfgVal.Paths.LogDir = ""
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServer points the service endpoints at baseURL.
func WithServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.BaseURL = baseURL
	}
}

// WithTimeoutSeconds overrides the per-request timeout.
func WithTimeoutSeconds(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.TimeoutSeconds = seconds
	}
}

// WithClearTitlesOnSelect enables dropping titles on every new selection.
func WithClearTitlesOnSelect() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.ClearTitlesOnSelect = true
	}
}

// WithLogDir enables file logging under the test's temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Export.Dir)
}

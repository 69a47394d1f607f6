package testsupport

import (
	"path/filepath"
	"testing"

	"brandsort/internal/config"
)

// ConfigOption adjusts a generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns the default configuration with a private log directory,
// an ephemeral API port and a small log buffer, after applying opts.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Daemon.LogBuffer = 256
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithDefaultRoot sets the organize root used when none is supplied.
func WithDefaultRoot(root string) ConfigOption {
	return func(cfg *config.Config) { cfg.Organizer.DefaultRoot = root }
}

// WithStageOverride raises the log level of one pipeline phase.
func WithStageOverride(stage, level string) ConfigOption {
	return func(cfg *config.Config) {
		if cfg.Logging.StageOverrides == nil {
			cfg.Logging.StageOverrides = map[string]string{}
		}
		cfg.Logging.StageOverrides[stage] = level
	}
}

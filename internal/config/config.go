package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// Organizer contains the naming conventions the pipeline relies on.
type Organizer struct {
	// StagingPrefix marks the top-level staging folder (case-insensitive prefix).
	StagingPrefix string `toml:"staging_prefix"`
	// QuarantineName is the folder that receives duplicates and replaced files.
	QuarantineName string `toml:"quarantine_name"`
	// DefaultRoot is organized when no root is given on the command line.
	DefaultRoot string `toml:"default_root"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
	// StageOverrides raises the minimum level for individual pipeline phases,
	// e.g. { sweep = "warn" }.
	StageOverrides map[string]string `toml:"stage_overrides"`
}

// Daemon contains configuration for the background API server.
type Daemon struct {
	LogBuffer     int `toml:"log_buffer"`
	StatusLines   int `toml:"status_lines"`
	ShutdownGrace int `toml:"shutdown_grace_seconds"`
}

// Config encapsulates all configuration values for brandsort.
//
// Configuration sections by subsystem:
//   - Paths: log directory and API bind address
//   - Organizer: staging marker, quarantine folder name, default root
//   - Logging: log format, level, retention, and per-phase overrides
//   - Daemon: in-memory log buffer and status reporting
type Config struct {
	Paths     Paths     `toml:"paths"`
	Organizer Organizer `toml:"organizer"`
	Logging   Logging   `toml:"logging"`
	Daemon    Daemon    `toml:"daemon"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the configuration and returns it with the path it came from and
// whether that file exists. A missing file is not an error: defaults apply.
// Unknown keys are rejected.
func Load(path string) (*Config, string, bool, error) {
	source, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	cfg := Default()
	if exists {
		if err := decodeFile(source, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, source, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strings.TrimSpace(strict.String()))
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locate picks the file to read. An explicit path is used as given, existing
// or not. Otherwise the user config wins over ./brandsort.toml, and when
// neither exists the user config path is reported.
func locate(explicit string) (string, bool, error) {
	if explicit != "" {
		path, err := expandPath(explicit)
		if err != nil {
			return "", false, err
		}
		switch _, err := os.Stat(path); {
		case err == nil:
			return path, true, nil
		case errors.Is(err, fs.ErrNotExist):
			return path, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := expandPath(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LockPath returns the file used to serialize organize runs between the CLI
// and the daemon.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "organize.lock")
}

// DaemonLockPath returns the file that keeps a single daemon per log directory.
func (c *Config) DaemonLockPath() string {
	return filepath.Join(c.Paths.LogDir, "brandsort.lock")
}

// StageLevel returns the configured override for a pipeline phase, if any.
func (c *Config) StageLevel(stage string) (string, bool) {
	level, ok := c.Logging.StageOverrides[strings.ToLower(strings.TrimSpace(stage))]
	return level, ok && level != ""
}

// ExpandPath resolves a leading "~" or "~/" against the home directory and
// returns the cleaned absolute path. Blank stays blank.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		p = home + p[1:]
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// CreateSample writes the annotated sample configuration to path, creating
// its directory.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

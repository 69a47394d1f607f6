package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganizer(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeDaemon()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeOrganizer() error {
	// The marker is matched as a raw prefix, so only outer whitespace is trimmed.
	if strings.TrimSpace(c.Organizer.StagingPrefix) == "" {
		c.Organizer.StagingPrefix = defaultStagingPrefix
	}
	c.Organizer.QuarantineName = strings.TrimSpace(c.Organizer.QuarantineName)
	if c.Organizer.QuarantineName == "" {
		c.Organizer.QuarantineName = defaultQuarantineName
	}
	root := strings.TrimSpace(c.Organizer.DefaultRoot)
	if root == "" {
		if value, ok := os.LookupEnv(RootEnvVar); ok {
			root = strings.TrimSpace(value)
		}
	}
	if root != "" {
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("organizer.default_root: %w", err)
		}
		root = expanded
	}
	c.Organizer.DefaultRoot = root
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	overrides := make(map[string]string, len(c.Logging.StageOverrides))
	for stage, level := range c.Logging.StageOverrides {
		stage = strings.ToLower(strings.TrimSpace(stage))
		level = strings.ToLower(strings.TrimSpace(level))
		if stage == "" || level == "" {
			continue
		}
		overrides[stage] = level
	}
	c.Logging.StageOverrides = overrides
}

func (c *Config) normalizeDaemon() {
	if c.Daemon.LogBuffer <= 0 {
		c.Daemon.LogBuffer = defaultLogBuffer
	}
	if c.Daemon.StatusLines <= 0 {
		c.Daemon.StatusLines = defaultStatusLines
	}
	if c.Daemon.ShutdownGrace <= 0 {
		c.Daemon.ShutdownGrace = defaultShutdownGrace
	}
}

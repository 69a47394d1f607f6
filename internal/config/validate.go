package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	validFormats = map[string]struct{}{"console": {}, "json": {}}
	validLevels  = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganizer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if _, port, err := net.SplitHostPort(c.Paths.APIBind); err != nil || port == "" {
		return fmt.Errorf("paths.api_bind %q must be host:port", c.Paths.APIBind)
	}
	return nil
}

func (c *Config) validateOrganizer() error {
	name := c.Organizer.QuarantineName
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("organizer.quarantine_name %q must be a single folder name", name)
	}
	if strings.ContainsAny(c.Organizer.StagingPrefix, `/\`) {
		return fmt.Errorf("organizer.staging_prefix %q must not contain path separators", c.Organizer.StagingPrefix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	if _, ok := validLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	for stage, level := range c.Logging.StageOverrides {
		if _, ok := validLevels[level]; !ok {
			return fmt.Errorf("logging.stage_overrides.%s: unsupported level %q", stage, level)
		}
	}
	return nil
}

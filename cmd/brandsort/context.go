package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"brandsort/internal/api"
	"brandsort/internal/config"
	"brandsort/internal/services"
)

// skipConfig marks commands that must run without a loadable configuration.
const skipConfigKey = "skipConfigLoad"

var skipConfig = map[string]string{skipConfigKey: "true"}

// commandContext carries the persistent flags and loads the configuration at
// most once per process.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	loadConfig func() (*config.Config, error)
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	c := &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
	c.loadConfig = sync.OnceValues(func() (*config.Config, error) {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "", "load config", "", err)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "", "ensure directories", "", err)
		}
		return cfg, nil
	})
	return c
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	return c.loadConfig()
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// logLevel returns the --log-level override, or the configured level.
func (c *commandContext) logLevel(cfg *config.Config) string {
	if c.logLevelFlag != nil {
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			return level
		}
	}
	return cfg.Logging.Level
}

func (c *commandContext) apiClient() (*api.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := api.NewClient(cfg.Paths.APIBind)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	if client == nil {
		return nil, errors.New("paths.api_bind is empty; the daemon API is disabled")
	}
	return client, nil
}

// wrapAPIError turns connection failures into a hint to start the daemon.
func wrapAPIError(err error, bind string) error {
	if err == nil {
		return nil
	}
	if api.IsAPIUnavailable(err) {
		return fmt.Errorf("connect to daemon at %s: not reachable; start it with `brandsort serve`", bind)
	}
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Annotations[skipConfigKey] == "true" {
			return true
		}
	}
	return false
}

// resolveRoot picks the positional root or falls back to the configured default.
func resolveRoot(cfg *config.Config, args []string) (string, error) {
	root := ""
	if len(args) > 0 {
		root = strings.TrimSpace(args[0])
	}
	if root == "" {
		root = cfg.Organizer.DefaultRoot
	}
	if root == "" {
		return "", services.Wrap(services.ErrValidation, "", "resolve root", "folder path is required (argument, organizer.default_root, or BRANDSORT_ROOT)", nil)
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "", "resolve root", root, err)
	}
	return expanded, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"brandsort/internal/config"
	"brandsort/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Create or check the configuration file"}
	cmd.AddCommand(newConfigValidateCommand(ctx), newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		dest      string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write an annotated sample configuration",
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := configTarget(dest)
			if err != nil {
				return err
			}
			_, statErr := os.Stat(target)
			switch {
			case statErr == nil && !overwrite:
				return services.Wrap(services.ErrValidation, "", "config init", target+" already exists (pass --overwrite to replace it)", nil)
			case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
				return fmt.Errorf("check config path: %w", statErr)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n"+
				"Set organizer.default_root (or export %s) to organize without a path argument.\n",
				target, config.RootEnvVar)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// configTarget expands the --path flag, defaulting to the user config file.
func configTarget(flagValue string) (string, error) {
	if target := strings.TrimSpace(flagValue); target != "" {
		return config.ExpandPath(target)
	}
	return config.DefaultConfigPath()
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and report the effective settings",
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "", "validate", path, err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return services.Wrap(services.ErrConfiguration, "", "ensure directories", cfg.Paths.LogDir, err)
			}
			source := path
			if !exists {
				source += " (not found, using defaults)"
			}
			bind := cfg.Paths.APIBind
			if bind == "" {
				bind = "disabled"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", source)
			fmt.Fprintf(out, "Log directory: %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "API bind: %s\n", bind)
			fmt.Fprintf(out, "Default root set: %s\n", yesNo(cfg.Organizer.DefaultRoot != ""))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

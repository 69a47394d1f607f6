package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	var configFlag, logLevelFlag string
	ctx := newCommandContext(&configFlag, &logLevelFlag)

	root := &cobra.Command{
		Use:   "brandsort",
		Short: "File product photos into Brand/Product/Category folders",
		Long: "brandsort flattens, classifies and files product photos under a root folder.\n" +
			"Run it once with `organize`, or start `serve` and send folders with `submit`.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newOrganizeCommand(ctx),
		newServeCommand(ctx),
		newSubmitCommand(ctx),
		newStatusCommand(ctx),
		newLogsCommand(ctx),
		newInspectCommand(),
		newConfigCommand(ctx),
	)
	return root
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"brandsort/internal/api"
	"brandsort/internal/config"
	"brandsort/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var fromFile bool
	var lines int
	var runID string
	var stage string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log output from the daemon or the latest run log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !fromFile {
				client, err := ctx.apiClient()
				if err == nil {
					err = streamDaemonLogs(cmd.Context(), client, out, api.StreamQuery{
						Limit: lines, Tail: true, RunID: runID, Stage: stage,
					}, follow)
					if err == nil || !api.IsAPIUnavailable(err) {
						return ignoreCancel(err)
					}
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "daemon not reachable; reading the latest run log")
			}
			return ignoreCancel(tailRunLog(cmd.Context(), cfg, out, lines, follow))
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().BoolVar(&fromFile, "file", false, "Read the latest organize run log instead of the daemon stream")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&runID, "run", "", "Only show events from this run ID (daemon stream)")
	cmd.Flags().StringVar(&stage, "stage", "", "Only show events from this phase (daemon stream)")
	return cmd
}

func streamDaemonLogs(ctx context.Context, client *api.Client, out io.Writer, q api.StreamQuery, follow bool) error {
	page, err := client.Logs(ctx, q)
	if err != nil {
		return err
	}
	for {
		for _, evt := range page.Events {
			fmt.Fprintln(out, formatEvent(evt))
		}
		if !follow {
			return nil
		}
		q.Tail = false
		q.Follow = true
		q.Since = page.Next
		if page, err = client.Logs(ctx, q); err != nil {
			return err
		}
	}
}

func tailRunLog(ctx context.Context, cfg *config.Config, out io.Writer, lines int, follow bool) error {
	path, ok, err := logs.LatestRunLog(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no organize run logs in %s", cfg.Paths.LogDir)
	}
	recent, offset, err := logs.Last(path, lines)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "==> %s <==\n", path)
	for _, line := range recent {
		fmt.Fprintln(out, line)
	}
	if !follow {
		return nil
	}
	return logs.Follow(ctx, path, offset, func(line string) {
		fmt.Fprintln(out, line)
	})
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

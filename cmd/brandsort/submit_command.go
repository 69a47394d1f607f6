package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"brandsort/internal/api"
	"brandsort/internal/logging"
	"brandsort/internal/services"
)

const followPollInterval = 500 * time.Millisecond

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "submit [root]",
		Short: "Ask the running daemon to organize a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := resolveRoot(cfg, args)
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			resp, err := client.Organize(cmd.Context(), root)
			if err != nil {
				return classifyAPIError(wrapAPIError(err, cfg.Paths.APIBind))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\nRun ID: %s\n", resp.Message, resp.RunID)
			if !follow {
				return nil
			}
			return followRun(cmd.Context(), client, resp.RunID, out)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream progress until the run finishes")
	return cmd
}

// classifyAPIError maps daemon status codes onto the CLI's error markers.
func classifyAPIError(err error) error {
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	switch statusErr.Code {
	case http.StatusConflict:
		return services.Wrap(services.ErrBusy, "", "submit", statusErr.Message, nil)
	case http.StatusBadRequest:
		return services.Wrap(services.ErrValidation, "", "submit", statusErr.Message, nil)
	default:
		return err
	}
}

// followRun prints the run's log events and phase progress until it completes.
func followRun(ctx context.Context, client *api.Client, runID string, out io.Writer) error {
	sampler := logging.NewProgressSampler(10)
	var since uint64
	ticker := time.NewTicker(followPollInterval)
	defer ticker.Stop()

	for {
		page, err := client.Logs(ctx, api.StreamQuery{Since: since, Limit: 500, RunID: runID})
		if err != nil {
			return err
		}
		for _, evt := range page.Events {
			fmt.Fprintln(out, formatEvent(evt))
		}
		since = page.Next

		status, err := client.Status(ctx)
		if err != nil {
			return err
		}
		if status.RunID != runID {
			return fmt.Errorf("run %s was superseded by %s", runID, status.RunID)
		}
		if sampler.ShouldLog(float64(status.Progress), status.Phase) && !status.Completed {
			fmt.Fprintf(out, "-- %s (%d%%)\n", status.Phase, status.Progress)
		}
		if status.Completed {
			if status.Stats != nil {
				fmt.Fprintln(out, renderStatsTable(*status.Stats))
			}
			if !status.Success {
				return errors.New(status.Error)
			}
			fmt.Fprintln(out, "Organization complete.")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func formatEvent(evt api.LogEvent) string {
	subject := evt.Component
	if evt.Stage != "" {
		subject += "/" + evt.Stage
	}
	line := fmt.Sprintf("%s %-5s", evt.Timestamp.Local().Format("15:04:05"), evt.Level)
	if subject != "" {
		line += " [" + subject + "]"
	}
	line += " " + evt.Message
	for _, key := range sortedKeys(evt.Fields) {
		line += fmt.Sprintf(" %s=%s", key, evt.Fields[key])
	}
	return line
}

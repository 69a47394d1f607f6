package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"brandsort/internal/api"
	"brandsort/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon, current run, and default root status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := newStatusPrinter(out)

			p.section("Daemon")
			client, clientErr := ctx.apiClient()
			var status api.RunStatus
			if clientErr == nil {
				status, err = client.Status(cmd.Context())
			} else {
				err = clientErr
			}
			switch {
			case err != nil && api.IsAPIUnavailable(err):
				p.line("API", statusWarn, "not reachable at "+cfg.Paths.APIBind)
			case err != nil:
				p.line("API", statusError, err.Error())
			default:
				p.line("API", statusOK, cfg.Paths.APIBind)
				printRunStatus(p, status)
			}

			fmt.Fprintln(out)
			p.section("Default root")
			if cfg.Organizer.DefaultRoot == "" {
				p.line("Root", statusInfo, "not configured")
				return nil
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg, "") {
				p.check(result)
			}

			if err == nil && status.Stats != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderStatsTable(*status.Stats))
			}
			return nil
		},
	}
}

func printRunStatus(p *statusPrinter, status api.RunStatus) {
	switch {
	case status.RunID == "":
		p.line("Run", statusInfo, "no run since the daemon started")
		return
	case status.Running:
		p.line("Run", statusInfo, fmt.Sprintf("running %s (%d%%)", status.Phase, status.Progress))
	case status.Success:
		p.line("Run", statusOK, "completed")
	default:
		p.line("Run", statusError, status.Error)
	}
	p.line("Run ID", statusInfo, status.RunID)
	p.line("Root", statusInfo, status.Root)
	if status.StartedAt != nil {
		p.line("Started", statusInfo, humanize.Time(*status.StartedAt))
	}
	if status.FinishedAt != nil {
		p.line("Finished", statusInfo, humanize.Time(*status.FinishedAt))
	}
}

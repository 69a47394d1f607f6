package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"brandsort/internal/api"
	"brandsort/internal/config"
	"brandsort/internal/logging"
	"brandsort/internal/logs"
	"brandsort/internal/organizer"
	"brandsort/internal/preflight"
	"brandsort/internal/services"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var quiet bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "organize [root]",
		Short: "Organize a photo folder in-process",
		Long: "Run the six organize phases over root (or organizer.default_root) and print a summary.\n" +
			"Fails when the daemon or another CLI run holds the run lock.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := resolveRoot(cfg, args)
			if err != nil {
				return err
			}
			return runOrganize(cmd, cfg, root, organizeOptions{
				level: ctx.logLevel(cfg),
				quiet: quiet,
				json:  jsonOutput,
			})
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors while running")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

type organizeOptions struct {
	level string
	quiet bool
	json  bool
}

func runOrganize(cmd *cobra.Command, cfg *config.Config, root string, opts organizeOptions) error {
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "acquire run lock", cfg.LockPath(), err)
	}
	if !locked {
		return services.Wrap(services.ErrBusy, "", "acquire run lock", "another organize run is active", nil)
	}
	defer lock.Unlock()

	runID := uuid.NewString()
	started := time.Now()
	logPath := logs.RunLogPath(cfg.Paths.LogDir, started, runID)
	logger, closeLog, err := newRunLogger(cmd.ErrOrStderr(), cfg, opts, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "organize-*.log", Exclude: []string{logPath}},
	)

	runCtx := services.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	checks := preflight.RunAll(runCtx, cfg, root)
	if err := preflight.FirstFatal(checks); err != nil {
		logging.ErrorWithContext(logger, "preflight failed", "preflight_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the folder path"),
		)
		return err
	}
	for _, warning := range preflight.Warnings(checks) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_warning",
			logging.String("check", warning.Name),
			logging.String("detail", warning.Detail),
			logging.String(logging.FieldImpact, "run continues; some moves may fail"),
		)
	}

	result := organizer.NewFromConfig(cfg, logger).Organize(runCtx, root)

	out := cmd.OutOrStdout()
	if opts.json {
		if err := writeRunJSON(out, runID, result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, renderRunSummary(runID, logPath, result))
	}
	if !result.Success {
		if result.Err != nil {
			return result.Err
		}
		return fmt.Errorf("organize %s failed; see %s", root, logPath)
	}
	return nil
}

// newRunLogger tees console output with a JSON log file for the run.
func newRunLogger(console io.Writer, cfg *config.Config, opts organizeOptions, logPath string) (*slog.Logger, func(), error) {
	consoleLogger, err := logging.New(logging.Options{
		Level:  opts.level,
		Format: cfg.Logging.Format,
		Writer: console,
	})
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "", "init logger", "", err)
	}
	if opts.quiet {
		consoleLogger = logging.WithLevelOverride(consoleLogger, slog.LevelWarn)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		consoleLogger.Warn("run log file unavailable", logging.String("path", logPath), logging.Error(err))
		return consoleLogger, func() {}, nil
	}
	fileLogger, err := logging.New(logging.Options{Level: opts.level, Format: "json", Writer: file})
	if err != nil {
		_ = file.Close()
		return nil, nil, services.Wrap(services.ErrConfiguration, "", "init logger", "", err)
	}
	return logging.TeeLogger(consoleLogger, fileLogger.Handler()), func() { _ = file.Close() }, nil
}

type runJSON struct {
	RunID      string       `json:"run_id"`
	Root       string       `json:"root"`
	Success    bool         `json:"success"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Stats      api.RunStats `json:"stats"`
}

func writeRunJSON(out io.Writer, runID string, result organizer.Result) error {
	payload := runJSON{
		RunID:      runID,
		Root:       result.Root,
		Success:    result.Success,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Stats:      api.FromStats(result.Stats),
	}
	if result.Err != nil {
		payload.Error = result.Err.Error()
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

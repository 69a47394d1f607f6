package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"brandsort/internal/config"
	"brandsort/internal/daemon"
	"brandsort/internal/logging"
	"brandsort/internal/preflight"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
	// Ready, when set, is called once the API is listening.
	Ready func(*daemon.Daemon)
}

// Paths names the files one daemon process writes under the log directory.
type Paths struct {
	Log     string
	Events  string
	Current string
	PID     string
}

// PathsFor derives the process file names for a daemon started at started.
func PathsFor(logDir string, started time.Time) Paths {
	stamp := started.UTC().Format("20060102T150405.000Z")
	return Paths{
		Log:     filepath.Join(logDir, fmt.Sprintf("brandsort-%s.log", stamp)),
		Events:  filepath.Join(logDir, fmt.Sprintf("brandsort-%s.events", stamp)),
		Current: filepath.Join(logDir, "brandsort.log"),
		PID:     filepath.Join(logDir, "brandsort.pid"),
	}
}

// Run starts the brandsort daemon and blocks until ctx ends or SIGINT/SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	paths := PathsFor(cfg.Paths.LogDir, time.Now())
	logHub := logging.NewStreamHub(cfg.Daemon.LogBuffer)
	eventArchive, archiveErr := logging.NewEventArchive(paths.Events)
	if archiveErr != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to initialize log archive: %v\n", archiveErr)
	} else if eventArchive != nil {
		logHub.AddSink(eventArchive)
		defer eventArchive.Close()
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", paths.Log},
		ErrorOutputPaths: []string{paths.Log},
		Development:      opts.Development,
		Stream:           logHub,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := ensureCurrentLogPointer(paths.Current, paths.Log); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update brandsort.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "brandsort-*.log", Exclude: []string{paths.Log}},
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "brandsort-*.events", Exclude: []string{paths.Events}},
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "organize-*.log"},
	)
	logRootSnapshot(signalCtx, logger, cfg)

	d, err := daemon.New(cfg, logger, logHub, eventArchive)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "stop the other daemon or change paths.api_bind"),
		)
		return err
	}

	if err := writePIDFile(paths.PID); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(paths.PID)

	if opts.Ready != nil {
		opts.Ready(d)
	}

	<-signalCtx.Done()
	logger.Info("brandsort daemon shutting down")
	return nil
}

// logRootSnapshot reports the default root's preflight state at startup.
func logRootSnapshot(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	if cfg.Organizer.DefaultRoot == "" {
		logger.Info("no default root configured", logging.EventType("root_snapshot"))
		return
	}
	for _, result := range preflight.RunAll(ctx, cfg, "") {
		attrs := []logging.Attr{
			logging.String("check", result.Name),
			logging.Bool("passed", result.Passed),
			logging.String("detail", result.Detail),
			logging.EventType("root_snapshot"),
		}
		if result.Passed {
			logger.Info("preflight", logging.Args(attrs...)...)
			continue
		}
		logging.WarnWithContext(logger, "preflight", "root_snapshot", attrs...)
	}
}

func ensureCurrentLogPointer(current, target string) error {
	if current == "" || target == "" {
		return nil
	}
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

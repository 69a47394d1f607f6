package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"brandsort/internal/api"
	"brandsort/internal/config"
	"brandsort/internal/logging"
)

// Daemon owns the organize Runner and the HTTP API and enforces
// single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	logHub *logging.StreamHub
	events *logging.EventArchive
	runner *Runner
	api    *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	LockFilePath string
	APIAddress   string
	Run          api.RunStatus
}

// New constructs a daemon. hub may be nil, in which case /api/logs is empty;
// archive may be nil to disable replay of evicted events.
func New(cfg *config.Config, logger *slog.Logger, hub *logging.StreamHub, archive *logging.EventArchive) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	lockPath := cfg.DaemonLockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		logHub:   hub,
		events:   archive,
		runner:   NewRunner(cfg, logger),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and starts the API listener.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another brandsort daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start api: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("brandsort daemon started",
		logging.String("lock", d.lockPath),
		logging.String("api", d.api.address()),
	)
	return nil
}

// Stop stops the API, waits up to the configured grace period for an active
// run, and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()

	grace := time.Duration(d.cfg.Daemon.ShutdownGrace) * time.Second
	if d.runner.Active() && !d.runner.Wait(grace) {
		logging.WarnWithContext(d.logger, "organize run still active at shutdown", "shutdown_incomplete",
			logging.Duration("grace", grace),
			logging.String(logging.FieldErrorHint, "re-run organize on the same folder"),
			logging.String(logging.FieldImpact, "tree left partially organized"),
		)
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("brandsort daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Runner exposes the organize runner.
func (d *Daemon) Runner() *Runner {
	return d.runner
}

// LogStream returns the live log hub, if any.
func (d *Daemon) LogStream() *logging.StreamHub {
	return d.logHub
}

// LogArchive returns the on-disk event journal, if any.
func (d *Daemon) LogArchive() *logging.EventArchive {
	return d.events
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
		APIAddress:   d.api.address(),
		Run:          d.runner.Status(),
	}
}

package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"brandsort/internal/api"
	"brandsort/internal/config"
	"brandsort/internal/logging"
	"brandsort/internal/logs"
	"brandsort/internal/organizer"
	"brandsort/internal/preflight"
	"brandsort/internal/services"
)

// failedRunMessage is reported when a run ends without success.
const failedRunMessage = "Organization failed. Check logs for details."

// Runner executes organize runs on a background goroutine, one at a time.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger

	runLock *flock.Flock
	active  atomic.Bool
	wg      sync.WaitGroup

	mu      sync.Mutex
	current *runState
}

type runState struct {
	id       string
	root     string
	started  time.Time
	finished time.Time
	recorder *logging.Recorder
	result   *organizer.Result
	err      string
}

// NewRunner builds a Runner. The run lock lives in the configured log directory.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "runner"),
		runLock: flock.New(cfg.LockPath()),
	}
}

// Submit starts organizing root in the background and returns the run ID.
// It fails with ErrValidation for a blank root and ErrBusy while another run
// (in this process or in a CLI holding the run lock) is active.
func (r *Runner) Submit(ctx context.Context, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", services.Wrap(services.ErrValidation, "submit", "validate", "folder path is required", nil)
	}
	if !r.active.CompareAndSwap(false, true) {
		return "", services.Wrap(services.ErrBusy, "submit", "start run", "organization already in progress", nil)
	}
	locked, err := r.runLock.TryLock()
	if err != nil {
		r.active.Store(false)
		return "", services.Wrap(services.ErrTransient, "submit", "acquire run lock", r.cfg.LockPath(), err)
	}
	if !locked {
		r.active.Store(false)
		return "", services.Wrap(services.ErrBusy, "submit", "acquire run lock", "another organize run holds the lock", nil)
	}

	state := &runState{
		id:       uuid.NewString(),
		root:     root,
		started:  time.Now(),
		recorder: logging.NewRecorder(nil),
	}
	r.mu.Lock()
	r.current = state
	r.mu.Unlock()

	r.logger.Info("organize run accepted",
		logging.String(logging.FieldRunID, state.id),
		logging.String("root", root),
		logging.String(logging.FieldCorrelationID, requestID(ctx)),
		logging.EventType("run_accepted"),
	)

	r.wg.Add(1)
	go r.execute(state)
	return state.id, nil
}

// execute runs the pipeline. Runs are not cancellable once started, so the
// submitting request's context is deliberately not used.
func (r *Runner) execute(state *runState) {
	defer r.wg.Done()
	defer r.active.Store(false)
	defer func() {
		if err := r.runLock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	ctx := services.WithRunID(context.Background(), state.id)
	base, closeRunLog := r.runLogger(state)
	defer closeRunLog()
	logger := logging.WithContext(ctx, logging.TeeLogger(base, state.recorder))

	for _, warning := range preflight.Warnings(preflight.RunAll(ctx, r.cfg, state.root)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_warning",
			logging.String("check", warning.Name),
			logging.String("detail", warning.Detail),
			logging.String(logging.FieldImpact, "run continues; some moves may fail"),
		)
	}

	result := organizer.NewFromConfig(r.cfg, logger).Organize(ctx, state.root)

	r.mu.Lock()
	state.finished = time.Now()
	state.result = &result
	if !result.Success {
		state.err = failedRunMessage
		if result.Err != nil {
			state.err = fmt.Sprintf("%s (%v)", failedRunMessage, result.Err)
		}
	}
	r.mu.Unlock()

	r.logger.Info("organize run finished",
		logging.String(logging.FieldRunID, state.id),
		logging.Bool("success", result.Success),
		logging.Int("changes", result.Stats.Changes()),
		logging.Duration("elapsed", state.finished.Sub(state.started)),
		logging.EventType("run_finished"),
	)
}

// runLogger tees the daemon logger into a per-run JSON log file. File errors
// are logged and the run proceeds without one.
func (r *Runner) runLogger(state *runState) (*slog.Logger, func()) {
	path := logs.RunLogPath(r.cfg.Paths.LogDir, state.started, state.id)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.logger.Warn("run log file unavailable", logging.String("path", path), logging.Error(err))
		return r.logger, func() {}
	}
	fileLogger, err := logging.New(logging.Options{
		Level:  r.cfg.Logging.Level,
		Format: "json",
		Writer: file,
	})
	if err != nil {
		_ = file.Close()
		r.logger.Warn("run log file unavailable", logging.String("path", path), logging.Error(err))
		return r.logger, func() {}
	}
	return logging.TeeLogger(r.logger, fileLogger.Handler()), func() { _ = file.Close() }
}

// Active reports whether a run is in progress.
func (r *Runner) Active() bool {
	return r.active.Load()
}

// Wait blocks until the current run finishes or timeout elapses. It reports
// whether the runner is idle.
func (r *Runner) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Status snapshots the current or most recent run.
func (r *Runner) Status() api.RunStatus {
	r.mu.Lock()
	state := r.current
	r.mu.Unlock()
	if state == nil {
		return api.RunStatus{Messages: []string{}}
	}

	phases := organizer.Phases()
	seen := state.recorder.EventCount(organizer.EventPhaseStart)
	status := api.RunStatus{
		RunID:    state.id,
		Root:     state.root,
		Messages: tailLines(state.recorder.Lines(), r.cfg.Daemon.StatusLines),
	}
	if seen > 0 && seen <= len(phases) {
		status.Phase = phases[seen-1]
	}
	started := state.started
	status.StartedAt = &started

	r.mu.Lock()
	defer r.mu.Unlock()
	if state.result == nil {
		status.Running = true
		status.Progress = seen * 100 / (len(phases) + 1)
		return status
	}
	finished := state.finished
	stats := api.FromStats(state.result.Stats)
	status.FinishedAt = &finished
	status.Completed = true
	status.Success = state.result.Success
	status.Progress = 100
	status.Error = state.err
	status.Stats = &stats
	return status
}

func tailLines(lines []string, limit int) []string {
	if limit > 0 && len(lines) > limit {
		return lines[len(lines)-limit:]
	}
	if lines == nil {
		return []string{}
	}
	return lines
}

func requestID(ctx context.Context) string {
	if id, ok := services.RequestIDFromContext(ctx); ok {
		return id
	}
	return ""
}

package daemon_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"brandsort/internal/config"
	"brandsort/internal/daemon"
	"brandsort/internal/logging"
	"brandsort/internal/logs"
	"brandsort/internal/services"
	"brandsort/internal/testsupport"
)

func photoTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"Acme/acme-x1.jpg":  "x1",
		"Zeta/zeta-100.png": "z",
	})
	return root
}

func waitIdle(t *testing.T, r *daemon.Runner) {
	t.Helper()
	if !r.Wait(10 * time.Second) {
		t.Fatal("run did not finish in time")
	}
}

func TestRunnerCompletesRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := photoTree(t)
	runner := daemon.NewRunner(cfg, logging.NewNop())

	if status := runner.Status(); status.Running || status.Completed || status.Messages == nil {
		t.Fatalf("unexpected idle status: %+v", status)
	}

	runID, err := runner.Submit(context.Background(), root)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if runID == "" {
		t.Fatal("expected run id")
	}
	waitIdle(t, runner)

	status := runner.Status()
	if !status.Completed || !status.Success || status.Running {
		t.Fatalf("expected successful completion, got %+v", status)
	}
	if status.Progress != 100 || status.RunID != runID || status.Error != "" {
		t.Fatalf("unexpected status fields: %+v", status)
	}
	if status.Stats == nil || status.Stats.FilesMoved != 2 {
		t.Fatalf("expected two moved files, got %+v", status.Stats)
	}
	if status.StartedAt == nil || status.FinishedAt == nil || status.FinishedAt.Before(*status.StartedAt) {
		t.Fatalf("expected ordered timestamps, got %v %v", status.StartedAt, status.FinishedAt)
	}
	if len(status.Messages) == 0 || len(status.Messages) > cfg.Daemon.StatusLines {
		t.Fatalf("expected bounded messages, got %d", len(status.Messages))
	}
	testsupport.AssertFile(t, root, "Acme/x1/JPEG/acme-x1.jpg", "x1")

	runLogs, err := logs.ListRunLogs(cfg.Paths.LogDir)
	if err != nil || len(runLogs) != 1 {
		t.Fatalf("expected one run log, got %v (%v)", runLogs, err)
	}
	if !strings.Contains(filepath.Base(runLogs[0]), runID[:8]) {
		t.Fatalf("run log %q not named after run %s", runLogs[0], runID)
	}
}

func TestRunnerRejectsBlankRoot(t *testing.T) {
	runner := daemon.NewRunner(testsupport.NewConfig(t), logging.NewNop())
	_, err := runner.Submit(context.Background(), "  ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if runner.Active() {
		t.Fatal("runner should stay idle")
	}
}

func TestRunnerBusyWhileLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock := flock.New(cfg.LockPath())
	if ok, err := lock.TryLock(); err != nil || !ok {
		t.Fatalf("acquire lock: %v %v", ok, err)
	}
	defer lock.Unlock()

	runner := daemon.NewRunner(cfg, logging.NewNop())
	_, err := runner.Submit(context.Background(), photoTree(t))
	if !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}
	if services.HTTPStatus(err) != 409 {
		t.Fatalf("expected 409 mapping, got %d", services.HTTPStatus(err))
	}
	if runner.Active() {
		t.Fatal("runner should not be active after rejection")
	}
}

func TestRunnerMissingRootFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := daemon.NewRunner(cfg, logging.NewNop())
	if _, err := runner.Submit(context.Background(), filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitIdle(t, runner)

	status := runner.Status()
	if !status.Completed || status.Success {
		t.Fatalf("expected failed completion, got %+v", status)
	}
	if !strings.HasPrefix(status.Error, "Organization failed. Check logs for details.") {
		t.Fatalf("unexpected error text %q", status.Error)
	}

	// The run lock is released so the next run may start.
	if _, err := runner.Submit(context.Background(), photoTree(t)); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	waitIdle(t, runner)
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Close()

	status := first.Status()
	if !status.Running || status.APIAddress == "" || status.LockFilePath != cfg.DaemonLockPath() {
		t.Fatalf("unexpected daemon status: %+v", status)
	}

	second := newDaemon(t, cfg)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second daemon to fail on the lock")
	}

	first.Stop()
	if first.Status().Running {
		t.Fatal("expected daemon stopped")
	}
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("restart after stop: %v", err)
	}
	second.Stop()
}

func newDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	d, err := daemon.New(cfg, logging.NewNop(), logging.NewStreamHub(64), nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

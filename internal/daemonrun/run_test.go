package daemonrun_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"brandsort/internal/api"
	"brandsort/internal/daemon"
	"brandsort/internal/daemonrun"
	"brandsort/internal/testsupport"
)

func TestRunServesUntilCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDefaultRoot(t.TempDir()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- daemonrun.Run(ctx, cfg, daemonrun.Options{
			LogLevel: "warn",
			Ready: func(d *daemon.Daemon) {
				ready <- d.Status().APIAddress
			},
		})
	}()

	var address string
	select {
	case address = <-ready:
	case err := <-done:
		t.Fatalf("Run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon not ready")
	}

	client, err := api.NewClient(address)
	if err != nil {
		t.Fatal(err)
	}
	status, err := client.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running || status.Completed {
		t.Fatalf("expected idle daemon, got %+v", status)
	}

	pid := filepath.Join(cfg.Paths.LogDir, "brandsort.pid")
	if _, err := os.Stat(pid); err != nil {
		t.Fatalf("expected pid file: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(cfg.Paths.LogDir, "brandsort.log")); err != nil {
		t.Fatalf("expected current log pointer: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
	if _, err := os.Stat(pid); !os.IsNotExist(err) {
		t.Fatalf("expected pid file removed, got %v", err)
	}
}

func TestPathsFor(t *testing.T) {
	started := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	paths := daemonrun.PathsFor("/logs", started)
	if paths.Log != "/logs/brandsort-20240506T070809.000Z.log" {
		t.Fatalf("unexpected log path %q", paths.Log)
	}
	if paths.Events != "/logs/brandsort-20240506T070809.000Z.events" {
		t.Fatalf("unexpected events path %q", paths.Events)
	}
}

package organizer

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

const fixedStamp = "20240102_030405"

func newTestRun(t *testing.T, root string) *run {
	t.Helper()
	e := New(Options{Now: func() time.Time { return fixedNow }}, nil)
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	return &run{
		ctx:    context.Background(),
		root:   abs,
		opts:   e.opts,
		base:   e.logger,
		logger: e.logger,
	}
}

package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"brandsort/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrMove, "flatten", "move", "a.jpg", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrMove) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"flatten", "move", "a.jpg"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{services.Wrap(services.ErrValidation, "api", "organize", "missing root", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrRootNotFound, "organize", "", "/nope", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrBusy, "api", "organize", "", nil), http.StatusConflict},
		{services.Wrap(services.ErrMove, "flatten", "", "", errors.New("io")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestExitCodeMapping(t *testing.T) {
	if code := services.ExitCode(nil); code != 0 {
		t.Fatalf("expected 0 for nil, got %d", code)
	}
	if code := services.ExitCode(services.Wrap(services.ErrConfiguration, "config", "load", "", nil)); code != 2 {
		t.Fatalf("expected 2 for configuration error, got %d", code)
	}
	if code := services.ExitCode(services.Wrap(services.ErrRemove, "prune", "", "", nil)); code != 1 {
		t.Fatalf("expected 1 for remove error, got %d", code)
	}
}

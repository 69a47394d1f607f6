package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel markers. Wrap attaches one to every error that crosses a package
// boundary so callers can classify failures with errors.Is.
var (
	ErrRootNotFound  = errors.New("root not found")
	ErrMove          = errors.New("move failed")
	ErrRemove        = errors.New("remove failed")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrBusy          = errors.New("run already in progress")
	ErrTransient     = errors.New("transient failure")
)

// Wrap formats "marker: stage: operation: message: cause". Blank parts are
// skipped and a nil marker becomes ErrTransient.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	var parts []string
	for _, part := range []string{stage, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	detail := strings.Join(parts, ": ")
	if detail == "" {
		detail = "service failure"
	}
	if err == nil {
		return fmt.Errorf("%w: %s", marker, detail)
	}
	return fmt.Errorf("%w: %s: %w", marker, detail, err)
}

// classification pairs a marker with its HTTP status and exit code. The first
// matching row wins.
type classification struct {
	marker error
	status int
	exit   int
}

var classifications = []classification{
	{ErrValidation, http.StatusBadRequest, 2},
	{ErrRootNotFound, http.StatusBadRequest, 2},
	{ErrConfiguration, http.StatusInternalServerError, 2},
	{ErrBusy, http.StatusConflict, 1},
}

func classify(err error) classification {
	for _, c := range classifications {
		if errors.Is(err, c.marker) {
			return c
		}
	}
	return classification{status: http.StatusInternalServerError, exit: 1}
}

// HTTPStatus maps an error to the status code the API server replies with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return classify(err).status
}

// ExitCode maps an error to the CLI process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return classify(err).exit
}

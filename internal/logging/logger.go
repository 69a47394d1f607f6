package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string // "console" (default) or "json"
	OutputPaths []string
	// ErrorOutputPaths are extra sinks; duplicates of OutputPaths are ignored.
	ErrorOutputPaths []string
	Development      bool
	// Stream, when set, receives every record the logger emits.
	Stream *StreamHub
	// Writer, when set, replaces OutputPaths; the caller owns closing it.
	Writer io.Writer
}

// New constructs a slog logger using the provided options. Debug level and
// development mode add the caller's file and line.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	source := opts.Development || level <= slog.LevelDebug

	out := opts.Writer
	if out == nil {
		if out, err = openOutputs(append(slices.Clone(opts.OutputPaths), opts.ErrorOutputPaths...)); err != nil {
			return nil, err
		}
	}

	var handler slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		handler = newConsoleHandler(out, level, source)
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level, AddSource: source, ReplaceAttr: jsonKeys})
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	if opts.Stream != nil {
		handler = newStreamHandler(handler, opts.Stream)
	}
	return slog.New(handler), nil
}

// jsonKeys shortens the built-in keys: ts in RFC 3339 UTC, a lowercase level,
// and source as file:line.
func jsonKeys(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
		}
		attr.Key = "ts"
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String(slog.SourceKey, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
		}
	}
	return attr
}

var levelNames = map[string]slog.Level{
	"":        slog.LevelInfo,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel maps a configured level name onto a slog level. Blank means info.
func ParseLevel(level string) (slog.Level, error) {
	if parsed, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]; ok {
		return parsed, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
}

// openOutputs resolves "stdout", "stderr" and file paths into one writer.
// Files are opened for append and their directory is created.
func openOutputs(targets []string) (io.Writer, error) {
	var (
		writers []io.Writer
		opened  []string
	)
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" || slices.Contains(opened, target) {
			continue
		}
		opened = append(opened, target)
		switch target {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			file, err := openLogFile(target)
			if err != nil {
				return nil, err
			}
			writers = append(writers, file)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create log dir for %s: %w", path, err)
	}
	return nil
}

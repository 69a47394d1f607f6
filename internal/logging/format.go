package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

// field is one flattened attribute; group members get dotted keys.
type field struct {
	key string
	val slog.Value
}

type fields []field

// gather flattens handler-level attrs followed by the record's own, so later
// entries override earlier ones when a caller looks a key up.
func gather(groups []string, bound []slog.Attr, record slog.Record) fields {
	out := make(fields, 0, len(bound)+record.NumAttrs())
	prefix := strings.Join(groups, ".")
	for _, attr := range bound {
		out = out.add(prefix, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		out = out.add(prefix, attr)
		return true
	})
	return out
}

func (fs fields) add(prefix string, attr slog.Attr) fields {
	if attr.Equal(slog.Attr{}) {
		return fs
	}
	val := attr.Value.Resolve()
	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}
	if val.Kind() != slog.KindGroup {
		return append(fs, field{key: key, val: val})
	}
	if key == "" {
		key = prefix
	}
	for _, member := range val.Group() {
		fs = fs.add(key, member)
	}
	return fs
}

// take removes every entry named key and returns the last value seen.
func (fs fields) take(key string) (string, fields) {
	var found string
	kept := fs[:0]
	for _, f := range fs {
		if f.key == key {
			found = plainValue(f.val)
			continue
		}
		kept = append(kept, f)
	}
	return found, kept
}

func (fs fields) without(keys ...string) fields {
	return slices.DeleteFunc(fs, func(f field) bool {
		return f.key == "" || slices.Contains(keys, f.key)
	})
}

func (fs fields) writeTo(buf *bytes.Buffer) {
	for _, f := range fs {
		if f.key == "" {
			continue
		}
		fmt.Fprintf(buf, " %s=%s", f.key, quotedValue(f.val))
	}
}

// writeSubject renders the "component [stage]: " prefix of a line.
func writeSubject(buf *bytes.Buffer, component, stage string) {
	if component != "" {
		buf.WriteString(component)
		if stage != "" {
			buf.WriteByte(' ')
		}
	}
	if stage != "" {
		buf.WriteString("[" + stage + "]")
	}
	if component != "" || stage != "" {
		buf.WriteString(": ")
	}
}

// plainValue renders v as text without quoting.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// quotedValue renders v for key=value output.
func quotedValue(v slog.Value) string {
	s := plainValue(v)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

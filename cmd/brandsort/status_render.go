package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"brandsort/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusKinds = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const ansiReset = "\x1b[0m"

// statusPrinter writes aligned "label: [KIND] message" lines, coloured when
// the destination is a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, color: shouldColorize(out)}
}

func (p *statusPrinter) section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	fmt.Fprintln(p.out, p.paint(statusInfo, line))
	fmt.Fprintln(p.out, p.paint(statusInfo, rule))
}

func (p *statusPrinter) line(label string, kind statusKind, message string) {
	fmt.Fprintln(p.out, p.paint(kind, formatStatusLine(label, kind, message)))
}

// check prints a preflight result; failed fatal checks are errors.
func (p *statusPrinter) check(result preflight.Result) {
	kind := statusOK
	switch {
	case !result.Passed && result.Fatal:
		kind = statusError
	case !result.Passed:
		kind = statusWarn
	}
	p.line(result.Name, kind, result.Detail)
}

func (p *statusPrinter) paint(kind statusKind, s string) string {
	if !p.color {
		return s
	}
	return statusKinds[kind].color + s + ansiReset
}

func formatStatusLine(label string, kind statusKind, message string) string {
	text := "[" + statusKinds[kind].label + "]"
	if message != "" {
		text += " " + message
	}
	return fmt.Sprintf("  %-20s %s", label+":", text)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

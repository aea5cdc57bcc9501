// Package ui provides terminal output helpers shared by the fmmd commands:
// color styling gated on terminal detection, human-readable formatting and
// the logger factory used by long-running commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

var (
	// Detect once whether stderr is a terminal; diagnostics go there.
	isTerminal   = isatty.IsTerminal(os.Stderr.Fd())
	colorEnabled = true
)

// DisableColors disables all color output.
func DisableColors() {
	colorEnabled = false
	isTerminal = false
	initStyles()
}

// EnableColors enables color output when stderr is a terminal.
func EnableColors() {
	colorEnabled = true
	isTerminal = isatty.IsTerminal(os.Stderr.Fd())
	initStyles()
}

// IsTerminal reports whether styled output is in effect.
func IsTerminal() bool {
	return isTerminal && colorEnabled
}

// NewLogger creates a leveled logger writing to w, with timestamps enabled.
// The writer defaults to os.Stderr.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true}
	return log.NewWithOptions(w, opts)
}

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(n int64) string {
	return humanize.Bytes(uint64(n))
}

// FormatDuration renders a track length as m:ss.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

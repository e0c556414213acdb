// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the process-wide logger. It wraps a charmbracelet
// logger so the rest of the code base can log with printf-style helpers or
// with structured key/value records.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than holding on to L, since Configure may replace it.
var L = clog.New(os.Stderr)

// Options controls how Configure builds the package logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is text, json or logfmt. Empty means text.
	Format string
	// Output receives the log records. Nil means stderr.
	Output io.Writer
}

// Configure replaces L with a logger built from opts.
func Configure(opts Options) error {
	level := clog.InfoLevel
	if opts.Level != "" {
		lv, err := clog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = lv
	}

	var formatter clog.Formatter
	switch strings.ToLower(opts.Format) {
	case "", "text":
		formatter = clog.TextFormatter
	case "json":
		formatter = clog.JSONFormatter
	case "logfmt":
		formatter = clog.LogfmtFormatter
	default:
		return fmt.Errorf("invalid log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	L = clog.NewWithOptions(out, clog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return nil
}

// SetDebug toggles debug output on the current logger.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}

// Event logs a structured info record named by the event key, e.g.
// Event("http_request", "status", 200).
func Event(name string, kv ...interface{}) {
	L.Info(name, append([]interface{}{"event", name}, kv...)...)
}

// Security logs a security relevant outcome such as a failed login or a ban.
// Failures and bans are logged at warn level, everything else at info.
func Security(event, ip, outcome string, kv ...interface{}) {
	fields := append([]interface{}{"type", "security", "event", event, "ip", ip, "outcome", outcome}, kv...)
	switch outcome {
	case "fail", "failure", "banned", "blocked":
		L.Warn("security", fields...)
	default:
		L.Info("security", fields...)
	}
}

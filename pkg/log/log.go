// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides the run logger: user-facing console output mirrored
// to a zerolog logger and to an append-only run-log file named with the
// run's start timestamp.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// lineTimeFormat is the timestamp prefix of every run-log line.
const lineTimeFormat = "2006-01-02 15:04:05"

// 🎯 FileOperation represents a single file copy for logging.
type FileOperation struct {
	Name        string // base filename
	Source      string // source path
	Duplicate   bool   // whether the file went to the duplicates dir
	Destination string // resolved destination path
}

// 🎯 Logger handles structured logging with console output and the
// append-only run-log sink.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	sink    io.Writer
	file    *os.File
	path    string
	mu      sync.Mutex
}

// 🏭 New creates a logger writing console output to console and run-log
// lines to sink. The zerolog logger is taken from ctx.
func New(ctx context.Context, console, sink io.Writer) *Logger {
	return &Logger{
		zlog:    *zerolog.Ctx(ctx),
		console: console,
		sink:    sink,
	}
}

// 📂 Open creates a logger backed by a run-log file named with the run's
// start timestamp, placed next to the executable (cwd fallback).
func Open(ctx context.Context, console io.Writer, start time.Time) (*Logger, error) {
	path := RunLogPath(start)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Errorf("opening run log %s: %w", path, err)
	}
	l := New(ctx, console, f)
	l.file = f
	l.path = path
	return l, nil
}

// RunLogPath returns the run-log file path for a run started at start.
func RunLogPath(start time.Time) string {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	} else if wd, err := os.Getwd(); err == nil {
		dir = wd
	}
	return filepath.Join(dir, "csvharvest_"+start.Format("20060102_150405")+".log")
}

// Path returns the run-log file path, empty if the logger was not opened
// from a file.
func (l *Logger) Path() string { return l.path }

// Close closes the underlying run-log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// record appends one `[timestamp] message` line to the run log.
func (l *Logger) record(msg string) {
	if l.sink == nil {
		return
	}
	fmt.Fprintf(l.sink, "[%s] %s\n", time.Now().Format(lineTimeFormat), msg)
}

// 📝 Header logs the run banner.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("csvharvest")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
	l.record(msg)
}

// 📝 StartRoot logs the beginning of a root folder scan.
func (l *Logger) StartRoot(root string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "[scanning %s]\n", color.New(color.FgCyan).Sprint(root))
	l.zlog.Info().Str("root", root).Msg("scanning root")
	l.record("scanning root " + root)
}

// 📝 LogFileOperation logs a single file copy.
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.Duplicate {
		pterm.Info.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "🔁"}).
			Printfln("Duplicate %s", op.Name)
	} else {
		pterm.Success.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "✨"}).
			Printfln("Archived %s", op.Name)
	}

	l.zlog.Info().
		Str("file", op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("duplicate", op.Duplicate).
		Msg("file copied")
	l.record(fmt.Sprintf("copied %s -> %s", op.Source, op.Destination))
}

// 📝 Progress logs a periodic progress notification. Observability only,
// it has no effect on control flow.
func (l *Logger) Progress(processed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Info.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "⏳"}).
		Printfln("processed %d files", processed)
	l.zlog.Debug().Int("processed", processed).Msg("progress")
	l.record(fmt.Sprintf("processed %d files", processed))
}

// 📝 Success logs a success message.
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Success.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	l.zlog.Info().Msg(msg)
	l.record(msg)
}

// 📝 Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Warning.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
	l.zlog.Warn().Msg(msg)
	l.record(msg)
}

// 📝 Error logs an error message.
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Error.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
	l.zlog.Error().Msg(msg)
	l.record(msg)
}

// 📝 Info logs an info message.
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Info.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: "ℹ️"}).Println(msg)
	l.zlog.Info().Msg(msg)
	l.record(msg)
}

// 📝 Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

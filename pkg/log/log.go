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

// Package log holds the user-visible log stream of the engine: one
// timestamped line per notable event, mirrored to zerolog for diagnostics.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const (
	// DefaultLimit is the number of lines kept before the oldest are dropped
	DefaultLimit = 1000

	timestampLayout = "2006-01-02 15:04:05"
)

// 🎚️ Level classifies a log line for colouring and zerolog mirroring
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns a string representation of Level
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// 📄 Entry is one line of the log stream
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String renders the entry the way it is shown to users
func (e Entry) String() string {
	return fmt.Sprintf("%s - %s", e.Time.Format(timestampLayout), e.Message)
}

// 🎯 Logger collects the user-visible log stream
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	entries []Entry
	limit   int
	now     func() time.Time
}

// 🏭 New creates a new logger. console may be nil when nothing should be
// printed as lines arrive.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		limit:   DefaultLimit,
		now:     time.Now,
	}
}

// WithLimit sets how many lines are retained; values below one keep the default
func (l *Logger) WithLimit(limit int) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > 0 {
		l.limit = limit
	}
	return l
}

// WithClock replaces the time source, mostly for tests
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) add(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{Time: l.now(), Level: level, Message: msg}
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}

	if l.console != nil {
		fmt.Fprintln(l.console, colorFor(level).Sprint(entry.String()))
	}

	var ev *zerolog.Event
	switch level {
	case LevelError:
		ev = l.zlog.Error()
	case LevelWarning:
		ev = l.zlog.Warn()
	default:
		ev = l.zlog.Info()
	}
	ev.Str("level_hint", level.String()).Msg(msg)
}

func colorFor(level Level) *color.Color {
	switch level {
	case LevelSuccess:
		return color.New(color.FgGreen)
	case LevelWarning:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.add(LevelInfo, msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.add(LevelSuccess, msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.add(LevelWarning, msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.add(LevelError, msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the retained entries, oldest first
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the retained messages without timestamps, oldest first
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Message
	}
	return out
}

// Lines returns the retained entries rendered for display
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.String()
	}
	return out
}

// Len returns the number of retained entries
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops every retained entry
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

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

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"2025-03-04 05:06:07 - info message",
				"2025-03-04 05:06:07 - warning message",
				"2025-03-04 05:06:07 - error message",
				"2025-03-04 05:06:07 - success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"2025-03-04 05:06:07 - info test",
				"2025-03-04 05:06:07 - warning test",
				"2025-03-04 05:06:07 - error test",
				"2025-03-04 05:06:07 - success test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t))).WithClock(fixedClock)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
			assert.Equal(t, tt.wantLogs, logger.Lines(), "retained lines should match console")
		})
	}
}

func TestLoggerLimit(t *testing.T) {
	logger := New(nil, zerolog.Nop()).WithLimit(3)

	for i := 0; i < 5; i++ {
		logger.Info(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, 3, logger.Len())
	assert.Equal(t, []string{"line 2", "line 3", "line 4"}, logger.Messages())

	logger.Clear()
	assert.Zero(t, logger.Len())
}

func TestLoggerEntriesLevels(t *testing.T) {
	logger := New(nil, zerolog.Nop())
	logger.Success("done")
	logger.Error("broke")

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, LevelSuccess, entries[0].Level)
	assert.Equal(t, LevelError, entries[1].Level)
	assert.Equal(t, "error", entries[1].Level.String())
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

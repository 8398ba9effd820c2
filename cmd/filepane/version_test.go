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

package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentBuild(t *testing.T) {
	b := currentBuild()
	assert.NotEmpty(t, b.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, b.Platform)
	assert.Equal(t, runtime.Version(), b.Go)
	assert.LessOrEqual(t, len(b.Revision), 12)
}

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name    string
		build   build
		wantRev string
		rows    int
	}{
		{name: "no_vcs", build: build{Version: "dev"}, wantRev: "unknown", rows: 4},
		{name: "dirty_with_time", build: build{Version: "v1.2.0", Revision: "abc123", Dirty: true, Time: "2025-01-01T00:00:00Z"}, wantRev: "abc123 (dirty)", rows: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.build.table()
			require.Len(t, data, tt.rows)
			assert.Equal(t, []string{"revision", tt.wantRev}, data[1])
		})
	}
}

func TestVersionCmd(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"--short"}, want: currentBuild().Version + "\n"},
		{name: "table", args: nil, want: "🚀 filepane\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newVersionCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
			assert.True(t, strings.HasPrefix(out.String(), tt.want), out.String())
		})
	}
}

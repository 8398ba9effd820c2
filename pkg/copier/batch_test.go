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

package copier

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWithLimitScenario(t *testing.T) {
	ctx, c, logger := setup(t, Options{})
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "a.txt")
	writeFile(t, src, []byte("0123456789"))
	dst := filepath.Join(dir, "dst")

	sum := c.CopyWithLimit(ctx, []string{src}, dst, 10)
	assert.Equal(t, 1, sum.Successful)
	assert.Zero(t, sum.Failed)
	assert.Equal(t, uint64(10), sum.Bytes)

	got, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), got)

	assert.Equal(t, []string{
		"📋 Starting batch copy operation for 1 files",
		"📍 Destination: " + dst,
		"⚡ Speed limit: 10 MB/s",
		"✅ Copied 1/1: a.txt -> a.txt (10 bytes)",
		"📊 Copy operation completed:",
		"   ✅ Successful: 1 files",
		"   ❌ Failed: 0 files",
		"   📦 Total bytes: 10 B",
	}, logger.Messages())
}

func TestMoveWithLimitMissingSource(t *testing.T) {
	ctx, c, logger := setup(t, Options{})
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "x")
	dst := filepath.Join(dir, "dst")

	sum := c.MoveWithLimit(ctx, []string{src}, dst, 10)
	assert.Zero(t, sum.Successful)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Items, 1)
	require.ErrorIs(t, sum.Items[0].Err, ErrNotFound)

	assert.NoFileExists(t, filepath.Join(dst, "x"))
	assert.Contains(t, logger.Messages(), "❌ Source does not exist: "+src)
	assert.Contains(t, logger.Messages(), "⚠️ Some files failed to move. Check the logs above for details.")
}

// every source is tallied exactly once whether it exists or not
func TestBatchTally(t *testing.T) {
	tests := []struct {
		name    string
		present int
		missing int
	}{
		{name: "all_present", present: 4, missing: 0},
		{name: "all_missing", present: 0, missing: 3},
		{name: "mixed", present: 7, missing: 5},
		{name: "empty", present: 0, missing: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, c, _ := setup(t, Options{})
			dir := t.TempDir()

			var sources []string
			for i := 0; i < tt.present; i++ {
				p := filepath.Join(dir, "src", fmt.Sprintf("f%d.txt", i))
				writeFile(t, p, []byte(strings.Repeat("x", i+1)))
				sources = append(sources, p)
			}
			for i := 0; i < tt.missing; i++ {
				sources = append(sources, filepath.Join(dir, "src", fmt.Sprintf("missing%d", i)))
			}

			sum := c.CopyWithLimit(ctx, sources, filepath.Join(dir, "dst"), 1)
			assert.Equal(t, tt.present, sum.Successful)
			assert.Equal(t, tt.missing, sum.Failed)
			assert.Len(t, sum.Items, tt.present+tt.missing)
			assert.Equal(t, uint64(tt.present*(tt.present+1)/2), sum.Bytes)
		})
	}
}

func TestBatchProgressCadence(t *testing.T) {
	ctx, c, logger := setup(t, Options{})
	dir := t.TempDir()

	var sources []string
	for i := 0; i < 11; i++ {
		p := filepath.Join(dir, "src", fmt.Sprintf("f%02d", i))
		writeFile(t, p, []byte("z"))
		sources = append(sources, p)
	}

	c.CopyWithLimit(ctx, sources, filepath.Join(dir, "dst"), 2.5)

	var notices []string
	for _, m := range logger.Messages() {
		if strings.HasPrefix(m, "⏸️") || strings.Contains(m, "Progress:") {
			notices = append(notices, m)
		}
	}
	assert.Equal(t, []string{
		"⏸️ Speed limiting at 2.5 MB/s (processed: 6/11)",
		"⏳ Progress: 6/11 (55%)",
		"⏸️ Speed limiting at 2.5 MB/s (processed: 11/11)",
		"✅ Progress: 11/11 (100%)",
	}, notices)
}

func TestMoveWithLimitDirectory(t *testing.T) {
	ctx, c, logger := setup(t, Options{})
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "tree")
	writeFile(t, filepath.Join(src, "one"), []byte("123"))
	writeFile(t, filepath.Join(src, "nested", "two"), []byte("45"))

	sum := c.MoveWithLimit(ctx, []string{src}, filepath.Join(dir, "dst"), 10)
	assert.Equal(t, 1, sum.Successful)
	assert.Equal(t, uint64(5), sum.Bytes)
	assert.NoDirExists(t, src)
	assert.FileExists(t, filepath.Join(dir, "dst", "tree", "nested", "two"))
	assert.Contains(t, logger.Messages(), "✅ Moved 1/1: tree -> tree (5 bytes)")
}

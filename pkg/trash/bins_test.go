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

package trash

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXDGBin(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	dataHome := filepath.Join(dir, "share")

	bin := NewXDGBin(dataHome, nil)
	bin.now = func() time.Time { return time.Date(2025, 6, 7, 8, 9, 10, 0, time.Local) }

	src := filepath.Join(dir, "my docs", "report.txt")
	writeFile(t, src, "one")

	trashPath, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "Trash", "files", "report.txt"), trashPath)

	info, err := os.ReadFile(filepath.Join(dataHome, "Trash", "info", "report.txt.trashinfo"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "[Trash Info]\n")
	assert.Contains(t, string(info), "my%20docs/report.txt\n")
	assert.Contains(t, string(info), "DeletionDate=2025-06-07T08:09:10\n")

	writeFile(t, src, "two")
	second, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "Trash", "files", "report.2.txt"), second)
	assert.FileExists(t, filepath.Join(dataHome, "Trash", "info", "report.2.txt.trashinfo"))

	require.NoError(t, bin.Restore(ctx, Item{OriginalPath: src, TrashPath: second}))
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	assert.NoFileExists(t, filepath.Join(dataHome, "Trash", "info", "report.2.txt.trashinfo"))
}

func TestXDGBinMoveFailureDropsInfo(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	bin := NewXDGBin(dir, func(context.Context, string, string) error { return os.ErrPermission })

	_, err := bin.Delete(ctx, filepath.Join(dir, "a"))
	require.ErrorIs(t, err, os.ErrPermission)

	entries, err := os.ReadDir(filepath.Join(dir, "Trash", "info"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMacBin(t *testing.T) {
	ctx := testContext(t)
	home := t.TempDir()
	bin := NewMacBin(home, nil)

	src := filepath.Join(home, "Desktop", "a.txt")
	writeFile(t, src, "a")
	first, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".Trash", "a.txt"), first)

	writeFile(t, src, "b")
	second, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, ".txt", filepath.Ext(second))

	require.NoError(t, bin.Restore(ctx, Item{OriginalPath: src, TrashPath: second}))
	assert.FileExists(t, src)
}

func TestDirBinNames(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	bin := NewDirBin(filepath.Join(dir, DefaultDirName), nil)
	bin.now = func() time.Time { return time.Unix(1700000000, 0) }

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "1")
	first, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDirName, "1700000000_a.txt"), first)

	writeFile(t, src, "2")
	second, err := bin.Delete(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDirName, "1700000000_a.txt_1"), second)
}

func TestDetect(t *testing.T) {
	ctx := testContext(t)
	home := t.TempDir()

	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantRoot string
		wantErr  bool
	}{
		{name: "linux_auto", opts: Options{GOOS: "linux", DataHome: filepath.Join(home, "data")}, wantName: "xdg", wantRoot: filepath.Join(home, "data", "Trash")},
		{name: "freebsd_native", opts: Options{GOOS: "freebsd", Mode: ModeNative, DataHome: filepath.Join(home, "data")}, wantName: "xdg", wantRoot: filepath.Join(home, "data", "Trash")},
		{name: "darwin_auto", opts: Options{GOOS: "darwin"}, wantName: "macos", wantRoot: filepath.Join(home, ".Trash")},
		{name: "windows_auto_falls_back", opts: Options{GOOS: "windows"}, wantName: "dir", wantRoot: filepath.Join(home, DefaultDirName)},
		{name: "windows_native_fails", opts: Options{GOOS: "windows", Mode: ModeNative}, wantErr: true},
		{name: "dir_mode_custom", opts: Options{GOOS: "linux", Mode: ModeDir, Dir: filepath.Join(home, "t")}, wantName: "dir", wantRoot: filepath.Join(home, "t")},
		{name: "unknown_mode", opts: Options{Mode: "cloud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Home = home
			bin, err := Detect(ctx, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, bin.Name())
			rooted, ok := bin.(interface{ Root() string })
			require.True(t, ok)
			assert.Equal(t, tt.wantRoot, rooted.Root())
		})
	}
}

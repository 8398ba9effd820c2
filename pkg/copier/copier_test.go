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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filepane/pkg/log"
)

func setup(t *testing.T, opts Options) (context.Context, *Copier, *log.Logger) {
	t.Helper()
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	logger := log.New(nil, zlog)
	return zlog.WithContext(context.Background()), New(logger, opts), logger
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

func TestCopyFileChunks(t *testing.T) {
	ctx, c, _ := setup(t, Options{ChunkSize: 7})
	dir := t.TempDir()
	content := bytes.Repeat([]byte("0123456789"), 50)
	src := filepath.Join(dir, "in.bin")
	writeFile(t, src, content)
	require.NoError(t, os.Chmod(src, 0600))

	dst := filepath.Join(dir, "deep", "out.bin")
	n, err := c.CopyFile(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(content)), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = c.CopyFile(ctx, filepath.Join(dir, "nope"), dst)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCopyDir(t *testing.T) {
	ctx, c, logger := setup(t, Options{Ignore: []string{"**/*.tmp", ".git"}})
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), []byte("aaaa"))
	writeFile(t, filepath.Join(src, "sub", "b.txt"), []byte("bb"))
	writeFile(t, filepath.Join(src, "sub", "junk.tmp"), []byte("junk"))
	writeFile(t, filepath.Join(src, ".git", "HEAD"), []byte("ref"))

	dst := filepath.Join(dir, "dst")
	n, err := c.CopyDir(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), n)

	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	assert.FileExists(t, filepath.Join(dst, "sub", "b.txt"))
	assert.NoFileExists(t, filepath.Join(dst, "sub", "junk.tmp"))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
	assert.Zero(t, logger.Len())

	_, err = c.CopyDir(ctx, src, filepath.Join(src, "sub", "inner"))
	require.Error(t, err)
}

func TestMove(t *testing.T) {
	ctx, c, _ := setup(t, Options{})
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, []byte("a"))

	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, c.Move(ctx, src, dst))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)

	require.ErrorIs(t, c.Move(ctx, src, dst), ErrNotFound)
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/a/b", "/a"))
	assert.True(t, within("/a", "/a"))
	assert.False(t, within("/ab", "/a"))
	assert.False(t, within("/", "/a"))
	assert.False(t, within("/a/..b", "/a/b"))
}

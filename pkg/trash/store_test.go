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

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type mockBin struct {
	mock.Mock
}

func (m *mockBin) Name() string { return "mock" }

func (m *mockBin) Delete(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockBin) Restore(ctx context.Context, item Item) error {
	return m.Called(ctx, item).Error(0)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStoreDeleteKeepsContent(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "work", "a.txt")
	writeFile(t, src, "hello")

	store := NewStore(NewDirBin(filepath.Join(dir, "bin"), nil))
	item, err := store.Delete(ctx, src)
	require.NoError(t, err)

	assert.NoFileExists(t, src)
	assert.Equal(t, src, item.OriginalPath)
	assert.Equal(t, FileTypeFile, item.FileType)
	data, err := os.ReadFile(item.TrashPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, 1, store.Len())
}

func TestStoreRestoreIsLIFO(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "sub")
	writeFile(t, first, "1")
	writeFile(t, filepath.Join(second, "inner.txt"), "2")

	store := NewStore(NewDirBin(filepath.Join(dir, "bin"), nil))
	_, err := store.Delete(ctx, first)
	require.NoError(t, err)
	dirItem, err := store.Delete(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, FileTypeDirectory, dirItem.FileType)

	top, ok := store.Peek()
	require.True(t, ok)
	assert.Equal(t, second, top.OriginalPath)

	restored, err := store.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, restored.OriginalPath)
	assert.FileExists(t, filepath.Join(second, "inner.txt"))
	assert.NoFileExists(t, first)

	restored, err = store.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, restored.OriginalPath)
	assert.FileExists(t, first)

	_, err = store.Restore(ctx)
	require.ErrorIs(t, err, ErrEmpty)
	_, ok = store.Peek()
	assert.False(t, ok)
}

func TestStoreRestoreOccupiedRequeues(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "old")

	store := NewStore(NewDirBin(filepath.Join(dir, "bin"), nil))
	item, err := store.Delete(ctx, src)
	require.NoError(t, err)

	writeFile(t, src, "new")
	_, err = store.Restore(ctx)
	require.ErrorIs(t, err, ErrRestoreFailed)
	assert.Equal(t, []Item{item}, store.Items())

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	require.NoError(t, os.Remove(src))
	_, err = store.Restore(ctx)
	require.NoError(t, err)
	data, err = os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestStoreWithMockBin(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "x")
	writeFile(t, src, "x")
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("delete_failure_records_nothing", func(t *testing.T) {
		bin := &mockBin{}
		bin.On("Delete", mock.Anything, src).Return("", errors.New("recycle bin unavailable")).Once()

		store := NewStore(bin)
		_, err := store.Delete(ctx, src)
		require.ErrorIs(t, err, ErrTrashFailed)
		assert.Zero(t, store.Len())
		bin.AssertExpectations(t)
	})

	t.Run("restore_failure_requeues", func(t *testing.T) {
		bin := &mockBin{}
		gone := filepath.Join(dir, "gone")
		item := Item{OriginalPath: gone, TrashPath: "/bin/gone", DeletedAt: fixed, FileType: FileTypeFile}

		writeFile(t, gone, "g")
		bin.On("Delete", mock.Anything, gone).Run(func(args mock.Arguments) {
			require.NoError(t, os.Remove(gone))
		}).Return("/bin/gone", nil).Once()
		bin.On("Restore", mock.Anything, item).Return(errors.New("disk full")).Once()
		bin.On("Restore", mock.Anything, item).Return(nil).Once()

		store := NewStore(bin).WithClock(func() time.Time { return fixed })
		got, err := store.Delete(ctx, gone)
		require.NoError(t, err)
		assert.Equal(t, item, got)

		_, err = store.Restore(ctx)
		require.ErrorIs(t, err, ErrRestoreFailed)
		assert.Equal(t, 1, store.Len())

		_, err = store.Restore(ctx)
		require.NoError(t, err)
		assert.Zero(t, store.Len())
		bin.AssertExpectations(t)
	})

	t.Run("missing_path", func(t *testing.T) {
		bin := &mockBin{}
		store := NewStore(bin)
		_, err := store.Delete(ctx, filepath.Join(dir, "nope"))
		require.ErrorIs(t, err, ErrTrashFailed)
		bin.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

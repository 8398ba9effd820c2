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

// Package trash redirects deletions to a recoverable location and restores
// them newest first.
package trash

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrTrashFailed   = errors.Base("moving to trash failed")
	ErrRestoreFailed = errors.Base("restoring from trash failed")
	ErrEmpty         = errors.Base("trash is empty")
)

// FileType tags what kind of entry was trashed
type FileType string

const (
	FileTypeFile      FileType = "file"
	FileTypeDirectory FileType = "directory"
	FileTypeSymlink   FileType = "symlink"
)

func fileTypeOf(info os.FileInfo) FileType {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return FileTypeSymlink
	case info.IsDir():
		return FileTypeDirectory
	default:
		return FileTypeFile
	}
}

// 🗑️ Item is one soft-deleted entry
type Item struct {
	OriginalPath string
	TrashPath    string
	DeletedAt    time.Time
	FileType     FileType
}

// Bin is a place deleted entries can be moved to and brought back from
type Bin interface {
	// Name identifies the bin in logs
	Name() string
	// Delete moves path into the bin and returns where it now lives
	Delete(ctx context.Context, path string) (string, error)
	// Restore moves a trashed entry back to its original path
	Restore(ctx context.Context, item Item) error
}

// MoveFunc relocates src to dst. Bins use it for every move so callers can
// supply a cross-device aware implementation.
type MoveFunc func(ctx context.Context, src, dst string) error

func rename(_ context.Context, src, dst string) error {
	return os.Rename(src, dst)
}

// 📚 Store records trashed items in deletion order. Delete and Restore hold
// the store lock for the whole move so the LIFO stays consistent.
type Store struct {
	mu    sync.Mutex
	bin   Bin
	items []Item
	now   func() time.Time
}

// NewStore creates an empty store backed by bin
func NewStore(bin Bin) *Store {
	return &Store{bin: bin, now: time.Now}
}

// WithClock overrides the clock used to stamp deletions
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Bin returns the backing bin
func (s *Store) Bin() Bin {
	return s.bin
}

// Delete moves path into the bin and records it
func (s *Store) Delete(ctx context.Context, path string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(path)
	if err != nil {
		return Item{}, errors.Errorf("%w: %s: %v", ErrTrashFailed, path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Item{}, errors.Errorf("%w: resolving %s: %v", ErrTrashFailed, path, err)
	}

	trashPath, err := s.bin.Delete(ctx, abs)
	if err != nil {
		return Item{}, errors.Errorf("%w: %s via %s: %v", ErrTrashFailed, abs, s.bin.Name(), err)
	}

	item := Item{
		OriginalPath: abs,
		TrashPath:    trashPath,
		DeletedAt:    s.now(),
		FileType:     fileTypeOf(info),
	}
	s.items = append(s.items, item)

	zerolog.Ctx(ctx).Debug().
		Str("original", item.OriginalPath).
		Str("trash", item.TrashPath).
		Str("bin", s.bin.Name()).
		Msg("moved to trash")

	return item, nil
}

// Restore brings back the most recently trashed item. On failure the item
// stays at the top of the store so the restore can be retried.
func (s *Store) Restore(ctx context.Context) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return Item{}, ErrEmpty
	}
	item := s.items[len(s.items)-1]

	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return item, errors.Errorf("%w: %s is occupied", ErrRestoreFailed, item.OriginalPath)
	}
	if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0755); err != nil {
		return item, errors.Errorf("%w: recreating parent of %s: %v", ErrRestoreFailed, item.OriginalPath, err)
	}
	if err := s.bin.Restore(ctx, item); err != nil {
		return item, errors.Errorf("%w: %s: %v", ErrRestoreFailed, item.OriginalPath, err)
	}

	s.items = s.items[:len(s.items)-1]

	zerolog.Ctx(ctx).Debug().
		Str("original", item.OriginalPath).
		Str("trash", item.TrashPath).
		Msg("restored from trash")

	return item, nil
}

// Peek returns the item Restore would act on
func (s *Store) Peek() (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return Item{}, false
	}
	return s.items[len(s.items)-1], true
}

// Items returns the trashed items, oldest first
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Item(nil), s.items...)
}

// Len returns the number of restorable items
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

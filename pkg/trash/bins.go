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
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🍎 MacBin moves entries into the user's ~/.Trash
type MacBin struct {
	root string
	move MoveFunc
}

// NewMacBin creates a bin rooted at home/.Trash
func NewMacBin(home string, move MoveFunc) *MacBin {
	if move == nil {
		move = rename
	}
	return &MacBin{root: filepath.Join(home, ".Trash"), move: move}
}

func (b *MacBin) Name() string { return "macos" }

// Root returns the trash directory
func (b *MacBin) Root() string { return b.root }

func (b *MacBin) Delete(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(b.root, 0700); err != nil {
		return "", errors.Errorf("creating %s: %w", b.root, err)
	}

	base := filepath.Base(path)
	dst := filepath.Join(b.root, base)
	if _, err := os.Lstat(dst); err == nil {
		// Finder appends the time when a name is taken
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		dst = filepath.Join(b.root, stem+" "+strconv.FormatInt(time.Now().UnixNano(), 10)+ext)
	}

	if err := b.move(ctx, path, dst); err != nil {
		return "", errors.Errorf("moving %s to %s: %w", path, dst, err)
	}
	return dst, nil
}

func (b *MacBin) Restore(ctx context.Context, item Item) error {
	if err := b.move(ctx, item.TrashPath, item.OriginalPath); err != nil {
		return errors.Errorf("moving %s back: %w", item.TrashPath, err)
	}
	return nil
}

// 📁 DirBin is the portable fallback: a private directory where each entry
// is stored as <unix-seconds>_<name>
type DirBin struct {
	root string
	move MoveFunc
	now  func() time.Time
}

// DefaultDirName is the fallback trash directory under the home directory
const DefaultDirName = ".filepane_trash"

// NewDirBin creates a bin rooted at dir
func NewDirBin(dir string, move MoveFunc) *DirBin {
	if move == nil {
		move = rename
	}
	return &DirBin{root: dir, move: move, now: time.Now}
}

func (b *DirBin) Name() string { return "dir" }

// Root returns the trash directory
func (b *DirBin) Root() string { return b.root }

func (b *DirBin) Delete(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(b.root, 0755); err != nil {
		return "", errors.Errorf("creating %s: %w", b.root, err)
	}

	prefix := strconv.FormatInt(b.now().Unix(), 10) + "_" + filepath.Base(path)
	dst := filepath.Join(b.root, prefix)
	for n := 1; ; n++ {
		if _, err := os.Lstat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(b.root, prefix+"_"+strconv.Itoa(n))
	}

	if err := b.move(ctx, path, dst); err != nil {
		return "", errors.Errorf("moving %s to %s: %w", path, dst, err)
	}
	return dst, nil
}

func (b *DirBin) Restore(ctx context.Context, item Item) error {
	if err := b.move(ctx, item.TrashPath, item.OriginalPath); err != nil {
		return errors.Errorf("moving %s back: %w", item.TrashPath, err)
	}
	return nil
}

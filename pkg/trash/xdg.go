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
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ♻️ XDGBin is the freedesktop.org trash under $XDG_DATA_HOME/Trash. Every
// entry gets a .trashinfo file so desktop file managers can see it.
type XDGBin struct {
	root string
	move MoveFunc
	now  func() time.Time
}

// NewXDGBin creates a bin rooted at dataHome/Trash
func NewXDGBin(dataHome string, move MoveFunc) *XDGBin {
	if move == nil {
		move = rename
	}
	return &XDGBin{root: filepath.Join(dataHome, "Trash"), move: move, now: time.Now}
}

func (b *XDGBin) Name() string { return "xdg" }

// Root returns the trash directory
func (b *XDGBin) Root() string { return b.root }

func (b *XDGBin) filesDir() string { return filepath.Join(b.root, "files") }
func (b *XDGBin) infoDir() string  { return filepath.Join(b.root, "info") }

func (b *XDGBin) infoPath(trashPath string) string {
	return filepath.Join(b.infoDir(), filepath.Base(trashPath)+".trashinfo")
}

func (b *XDGBin) Delete(ctx context.Context, path string) (string, error) {
	for _, dir := range []string{b.filesDir(), b.infoDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", errors.Errorf("creating %s: %w", dir, err)
		}
	}

	info, name, err := b.reserve(filepath.Base(path))
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: path}).EscapedPath(),
		b.now().Format("2006-01-02T15:04:05"))
	if _, err := info.WriteString(body); err != nil {
		info.Close()
		os.Remove(info.Name())
		return "", errors.Errorf("writing trash info: %w", err)
	}
	if err := info.Close(); err != nil {
		os.Remove(info.Name())
		return "", errors.Errorf("closing trash info: %w", err)
	}

	dst := filepath.Join(b.filesDir(), name)
	if err := b.move(ctx, path, dst); err != nil {
		os.Remove(info.Name())
		return "", errors.Errorf("moving %s to %s: %w", path, dst, err)
	}
	return dst, nil
}

// reserve claims a unique entry name by exclusively creating its info file
func (b *XDGBin) reserve(base string) (*os.File, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; n < 10000; n++ {
		name := base
		if n > 1 {
			name = stem + "." + strconv.Itoa(n) + ext
		}
		f, err := os.OpenFile(filepath.Join(b.infoDir(), name+".trashinfo"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return f, name, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.Errorf("creating trash info: %w", err)
		}
	}
	return nil, "", errors.Errorf("no free trash name for %s", base)
}

func (b *XDGBin) Restore(ctx context.Context, item Item) error {
	if err := b.move(ctx, item.TrashPath, item.OriginalPath); err != nil {
		return errors.Errorf("moving %s back: %w", item.TrashPath, err)
	}
	if err := os.Remove(b.infoPath(item.TrashPath)); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing trash info: %w", err)
	}
	return nil
}

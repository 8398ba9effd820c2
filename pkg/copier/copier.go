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

// Package copier copies and moves files and directory trees in fixed-size
// chunks and runs batches of them with per-item accounting.
package copier

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/log"
	"github.com/walteh/filepane/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultChunkSize is the read/write buffer used per file
	DefaultChunkSize = 64 * 1024
	// DefaultProgressEvery is how often, in items, a batch reports progress
	DefaultProgressEvery = 5
)

// ErrNotFound is returned when a source path does not exist
var ErrNotFound = errors.Base("source does not exist")

// Options tunes a Copier. Zero values pick the defaults.
type Options struct {
	ChunkSize     int
	ProgressEvery int
	Ignore        []string // doublestar globs skipped during recursive copies
}

// 📦 Copier performs file copies and moves and reports to the log stream
type Copier struct {
	logger    *log.Logger
	formatter status.FileFormatter
	opts      Options
	rename    func(oldpath, newpath string) error
}

// 🏭 New creates a copier reporting to logger
func New(logger *log.Logger, opts Options) *Copier {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Copier{
		logger:    logger,
		formatter: status.NewDefaultFileFormatter(),
		opts:      opts,
		rename:    os.Rename,
	}
}

// CopyFile copies the regular file src to the file path dst, creating the
// parent of dst. It returns the number of bytes written.
func (c *Copier) CopyFile(ctx context.Context, src, dst string) (uint64, error) {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Errorf("%w: %s", ErrNotFound, src)
		}
		return 0, errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.Errorf("stat source: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, errors.Errorf("creating parent directories: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Errorf("creating destination: %w", err)
	}

	written, err := c.chunked(out, in)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = errors.Errorf("closing destination: %w", cerr)
	}
	if err != nil {
		return written, err
	}

	zerolog.Ctx(ctx).Trace().Str("src", src).Str("dst", dst).Uint64("bytes", written).Msg("copied file")
	return written, nil
}

func (c *Copier) chunked(w io.Writer, r io.Reader) (uint64, error) {
	buf := make([]byte, c.opts.ChunkSize)
	var total uint64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, errors.Errorf("writing chunk: %w", werr)
			}
			total += uint64(n)
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, errors.Errorf("reading chunk: %w", rerr)
		}
	}
}

// CopyDir copies the tree rooted at src to dst. A file that fails to copy
// is logged and skipped; only failures to read or create directories abort
// the walk.
func (c *Copier) CopyDir(ctx context.Context, src, dst string) (uint64, error) {
	if within(dst, src) {
		return 0, errors.Errorf("cannot copy %s into itself", src)
	}
	return c.copyDir(ctx, src, src, dst)
}

// within reports whether path is parent or lies below it
func within(path, parent string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absParent, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c *Copier) copyDir(ctx context.Context, root, src, dst string) (uint64, error) {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, errors.Errorf("creating %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", src, err)
	}

	var total uint64
	for _, entry := range entries {
		path := filepath.Join(src, entry.Name())
		target := filepath.Join(dst, entry.Name())

		if c.ignored(ctx, root, path) {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			c.logger.Errorf("❌ Failed to copy file %s: %v", path, err)
			continue
		}

		if info.IsDir() {
			n, err := c.copyDir(ctx, root, path, target)
			total += n
			if err != nil {
				return total, err
			}
			continue
		}

		n, err := c.CopyFile(ctx, path, target)
		if err != nil {
			c.logger.Errorf("❌ Failed to copy file %s: %v", path, err)
			continue
		}
		total += n
	}
	return total, nil
}

func (c *Copier) ignored(ctx context.Context, root, path string) bool {
	if len(c.opts.Ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range c.opts.Ignore {
		for _, candidate := range []string{rel, base} {
			matched, err := doublestar.Match(pattern, candidate)
			if err != nil {
				zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
				break
			}
			if matched {
				zerolog.Ctx(ctx).Debug().Str("path", path).Str("pattern", pattern).Msg("skipped by ignore pattern")
				return true
			}
		}
	}
	return false
}

// CopyPath copies src to dst whether src is a file or a directory
func (c *Copier) CopyPath(ctx context.Context, src, dst string) (uint64, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Errorf("%w: %s", ErrNotFound, src)
		}
		return 0, errors.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return c.CopyDir(ctx, src, dst)
	}
	return c.CopyFile(ctx, src, dst)
}

// Move renames src to dst. When the two are on different devices the entry
// is copied without ignore globs and the source is removed only once every
// entry has arrived.
func (c *Copier) Move(ctx context.Context, src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrNotFound, src)
		}
		return errors.Errorf("stat %s: %w", src, err)
	}

	err := c.rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming %s to %s: %w", src, dst, err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("cross-device move, copying instead")
	return c.moveAcross(ctx, src, dst)
}

func (c *Copier) moveAcross(ctx context.Context, src, dst string) error {
	if within(dst, src) {
		return errors.Errorf("cannot move %s into itself", src)
	}
	// a failed copy removes dst, so it must not hold anything beforehand
	if _, err := os.Lstat(dst); err == nil {
		return errors.Errorf("destination %s already exists", dst)
	}

	if err := c.copyStrict(ctx, src, dst); err != nil {
		if rerr := os.RemoveAll(dst); rerr != nil {
			zerolog.Ctx(ctx).Warn().Err(rerr).Str("dst", dst).Msg("leaving partial cross-device copy")
		}
		return errors.Errorf("copying across devices: %w", err)
	}
	if err := os.RemoveAll(src); err != nil {
		return errors.Errorf("removing moved source: %w", err)
	}
	return nil
}

// copyStrict reproduces src at dst entry for entry. Symlinks are recreated
// rather than followed, and the first failure stops the copy.
func (c *Copier) copyStrict(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("stat %s: %w", src, err)
	}

	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return errors.Errorf("reading link %s: %w", src, err)
		}
		if err := os.Symlink(link, dst); err != nil {
			return errors.Errorf("creating link %s: %w", dst, err)
		}
		return nil

	case mode.IsDir():
		if err := os.Mkdir(dst, 0700); err != nil {
			return errors.Errorf("creating %s: %w", dst, err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return errors.Errorf("reading %s: %w", src, err)
		}
		for _, entry := range entries {
			if err := c.copyStrict(ctx, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		if err := os.Chmod(dst, mode.Perm()); err != nil {
			return errors.Errorf("setting mode on %s: %w", dst, err)
		}
		return nil

	case mode.IsRegular():
		_, err := c.CopyFile(ctx, src, dst)
		return err

	default:
		return errors.Errorf("cannot copy %s: unsupported file type %s", src, mode.Type())
	}
}

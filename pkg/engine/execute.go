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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/checksum"
	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/copier"
	"github.com/walteh/filepane/pkg/status"
	"github.com/walteh/filepane/pkg/tab"
	"gitlab.com/tozd/go/errors"
)

// execute applies cmd to t and records it on success. Callers hold e.mu.
func (e *Engine) execute(ctx context.Context, t *tab.Tab, cmd command.Command) error {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	e.logger.Info(command.Describe(cmd))

	err := e.apply(ctx, t, cmd)
	e.observe(cmd.Kind(), start, err)
	if err != nil {
		opErr := &OperationError{Command: cmd, Err: err}
		e.logger.Errorf("❌ %v", opErr)
		logger.Debug().Err(err).Str("kind", string(cmd.Kind())).Msg("command failed")
		return opErr
	}

	t.Record(cmd)
	logger.Debug().Str("kind", string(cmd.Kind())).Dur("took", time.Since(start)).Msg("command applied")
	return nil
}

// apply performs the filesystem side of cmd and logs its outcome
func (e *Engine) apply(ctx context.Context, t *tab.Tab, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.CopyFile:
		dst := copier.Target(c.Source, c.Destination)
		n, err := e.copier.CopyPath(ctx, c.Source, dst)
		if err != nil {
			return err
		}
		e.logger.Successf("✅ Copied %s to %s (%s)", c.Source, dst, status.FormatBytes(n))
		return nil

	case command.MoveFile:
		dst := copier.Target(c.Source, c.Destination)
		if err := os.MkdirAll(c.Destination, 0755); err != nil {
			return errors.Errorf("creating destination directory: %w", err)
		}
		if err := e.copier.Move(ctx, c.Source, dst); err != nil {
			return err
		}
		e.logger.Successf("✅ Moved %s to %s", c.Source, dst)
		return nil

	case command.DeleteFile:
		item, err := e.trash.Delete(ctx, c.Path)
		if err != nil {
			return err
		}
		e.logger.Successf("🗑️ Moved %s to trash: %s", item.OriginalPath, item.TrashPath)
		return nil

	case command.CreateDirectory:
		if err := os.MkdirAll(c.Path, 0755); err != nil {
			return errors.Errorf("creating directory: %w", err)
		}
		e.logger.Successf("📁 Created directory %s", c.Path)
		return nil

	case command.RenameFile:
		if err := rename(c.OldPath, c.NewPath); err != nil {
			return err
		}
		e.logger.Successf("✏️ Renamed %s to %s", c.OldPath, c.NewPath)
		return nil

	case command.ChangeDirectory:
		if !c.Panel.Valid() {
			return errors.Errorf("unknown panel %d", int(c.Panel))
		}
		path := c.NewPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(t.Path(c.Panel), path)
		}
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return errors.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			return errors.Errorf("%s is not a directory", path)
		}
		t.SetPath(c.Panel, path)
		return nil

	case command.CalculateChecksum:
		sum, err := checksum.File(ctx, c.Path, c.Algorithm)
		if err != nil {
			return err
		}
		e.logger.Successf("🔐 %s %s: %s", c.Algorithm, c.Path, sum)
		return nil

	default:
		return errors.Errorf("unsupported command %T", cmd)
	}
}

// rename moves old to new. An existing entry at new is replaced.
func rename(oldPath, newPath string) error {
	if _, err := os.Lstat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", copier.ErrNotFound, oldPath)
		}
		return errors.Errorf("stat %s: %w", oldPath, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return errors.Errorf("renaming: %w", err)
	}
	return nil
}

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

	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/copier"
	"github.com/walteh/filepane/pkg/tab"
	"github.com/walteh/filepane/pkg/trash"
	"gitlab.com/tozd/go/errors"
)

// ↩️ Undo reverses the most recent command of the active tab and moves it to
// the redo stack. A command whose reversal fails is logged and dropped so the
// older entries stay reachable.
func (e *Engine) Undo(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Active()
	cmd, ok := t.PopUndo()
	if !ok {
		e.logger.Info("Nothing to undo")
		return ErrNothingToUndo
	}

	e.logger.Info(command.DescribeHistory("Undo", cmd))
	if err := e.reverse(ctx, cmd); err != nil {
		e.metrics.RecordHistoryStep("undo", false)
		e.logger.Errorf("❌ Undo failed: %v", err)
		return errors.Errorf("undoing %s: %w", cmd.Kind(), err)
	}

	t.PushRedo(cmd)
	e.metrics.RecordHistoryStep("undo", true)
	e.metrics.SetTrashItems(e.trash.Len())
	return nil
}

// ↪️ Redo re-applies the most recently undone command of the active tab and
// moves it back to the undo stack. A failed redo drops the command.
func (e *Engine) Redo(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Active()
	cmd, ok := t.PopRedo()
	if !ok {
		e.logger.Info("Nothing to redo")
		return ErrNothingToRedo
	}

	e.logger.Info(command.DescribeHistory("Redo", cmd))
	if err := e.reapply(ctx, t, cmd); err != nil {
		e.metrics.RecordHistoryStep("redo", false)
		e.logger.Errorf("❌ Redo failed: %v", err)
		return errors.Errorf("redoing %s: %w", cmd.Kind(), err)
	}

	t.PushUndo(cmd)
	e.metrics.RecordHistoryStep("redo", true)
	e.metrics.SetTrashItems(e.trash.Len())
	return nil
}

// reverse undoes the filesystem effect of cmd. Copies, directory changes
// and checksums leave nothing to reverse.
func (e *Engine) reverse(ctx context.Context, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.RenameFile:
		return rename(c.NewPath, c.OldPath)

	case command.MoveFile:
		return e.copier.Move(ctx, copier.Target(c.Source, c.Destination), c.Source)

	case command.CreateDirectory:
		if err := os.Remove(c.Path); err != nil {
			return errors.Errorf("removing %s: %w", c.Path, err)
		}
		return nil

	case command.DeleteFile:
		abs, err := filepath.Abs(c.Path)
		if err != nil {
			return errors.Errorf("resolving %s: %w", c.Path, err)
		}
		top, ok := e.trash.Peek()
		if !ok || top.OriginalPath != abs {
			return errors.Errorf("%s is not the most recent trash entry", abs)
		}
		item, err := e.trash.Restore(ctx)
		if err != nil {
			return err
		}
		e.logger.Successf("♻️ Restored %s", item.OriginalPath)
		return nil

	case command.CopyFile, command.ChangeDirectory, command.CalculateChecksum:
		return nil

	default:
		return errors.Errorf("unsupported command %T", cmd)
	}
}

// reapply redoes the filesystem effect of cmd without touching history
func (e *Engine) reapply(ctx context.Context, t *tab.Tab, cmd command.Command) error {
	switch cmd.(type) {
	case command.RenameFile, command.MoveFile, command.CreateDirectory, command.DeleteFile:
		return e.apply(ctx, t, cmd)
	default:
		return nil
	}
}

// ♻️ Restore brings back the most recently trashed entry and reports whether
// it did. A failed restore keeps the entry for another try.
func (e *Engine) Restore(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := e.trash.Restore(ctx)
	e.metrics.SetTrashItems(e.trash.Len())
	if err != nil {
		if errors.Is(err, trash.ErrEmpty) {
			e.logger.Info("Trash is empty")
			return false
		}
		e.logger.Errorf("❌ Failed to restore: %v", err)
		return false
	}

	e.logger.Successf("♻️ Restored %s", item.OriginalPath)
	return true
}

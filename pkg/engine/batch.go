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

	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/copier"
)

// 📋 BatchCopy copies the selection of panel from into the opposite panel
// of the active tab. Every item that lands is recorded as a CopyFile.
func (e *Engine) BatchCopy(ctx context.Context, from command.Panel) copier.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Active()
	sources := t.SelectedPaths(from)
	if len(sources) == 0 {
		e.logger.Info("No files selected to copy")
		return copier.Summary{}
	}
	dest := t.Path(from.Opposite())

	sum := e.copier.CopyWithLimit(ctx, sources, dest, t.CopySpeedLimit)
	e.metrics.RecordBatch("copy", sum.Successful, sum.Failed, sum.Bytes)
	for _, item := range sum.Items {
		if item.Err == nil {
			t.Record(command.CopyFile{Source: item.Source, Destination: dest})
		}
	}
	return sum
}

// 🚚 BatchMove moves the selection of panel from into the opposite panel of
// the active tab. Every item that lands is recorded as a MoveFile and the
// panel selection is cleared.
func (e *Engine) BatchMove(ctx context.Context, from command.Panel) copier.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Active()
	sources := t.SelectedPaths(from)
	if len(sources) == 0 {
		e.logger.Info("No files selected to move")
		return copier.Summary{}
	}
	dest := t.Path(from.Opposite())

	sum := e.copier.MoveWithLimit(ctx, sources, dest, t.CopySpeedLimit)
	e.metrics.RecordBatch("move", sum.Successful, sum.Failed, sum.Bytes)
	for _, item := range sum.Items {
		if item.Err == nil {
			t.Record(command.MoveFile{Source: item.Source, Destination: dest})
		}
	}
	t.ClearSelection(from)
	return sum
}

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

package command

import (
	"time"
)

// 📦 OperationType is the kind of a staged destructive operation
type OperationType string

const (
	OperationCopy   OperationType = "copy"
	OperationMove   OperationType = "move"
	OperationDelete OperationType = "delete"
	OperationRename OperationType = "rename"
)

// ⏳ PendingOperation is the staged record of a destructive command that is
// waiting for confirmation
type PendingOperation struct {
	Type            OperationType
	SourcePath      string
	DestinationPath *string
	OriginalPath    *string // kept so the operation can be reversed later
	Timestamp       time.Time
}

// NewPendingOperation derives the staged record for cmd. The second return
// value is false for commands that are never staged.
func NewPendingOperation(cmd Command, now time.Time) (PendingOperation, bool) {
	switch c := cmd.(type) {
	case CopyFile:
		return PendingOperation{
			Type:            OperationCopy,
			SourcePath:      c.Source,
			DestinationPath: ptr(c.Destination),
			Timestamp:       now,
		}, true
	case MoveFile:
		return PendingOperation{
			Type:            OperationMove,
			SourcePath:      c.Source,
			DestinationPath: ptr(c.Destination),
			OriginalPath:    ptr(c.Source),
			Timestamp:       now,
		}, true
	case DeleteFile:
		return PendingOperation{
			Type:         OperationDelete,
			SourcePath:   c.Path,
			OriginalPath: ptr(c.Path),
			Timestamp:    now,
		}, true
	case RenameFile:
		return PendingOperation{
			Type:            OperationRename,
			SourcePath:      c.OldPath,
			DestinationPath: ptr(c.NewPath),
			OriginalPath:    ptr(c.OldPath),
			Timestamp:       now,
		}, true
	default:
		return PendingOperation{}, false
	}
}

func ptr(s string) *string {
	return &s
}

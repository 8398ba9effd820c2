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

// Package command defines the closed set of filesystem actions the engine
// knows how to run, plus the staged record kept while one awaits confirmation.
package command

import (
	"fmt"
)

// 🧭 Panel identifies one of the two navigation columns of a tab
type Panel int

const (
	PanelLeft Panel = iota
	PanelRight
)

// String returns a string representation of Panel
func (p Panel) String() string {
	switch p {
	case PanelLeft:
		return "left"
	case PanelRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether p names one of the two panels
func (p Panel) Valid() bool {
	return p == PanelLeft || p == PanelRight
}

// Opposite returns the other panel
func (p Panel) Opposite() Panel {
	if p == PanelLeft {
		return PanelRight
	}
	return PanelLeft
}

// 🏷️ Kind names a command variant
type Kind string

const (
	KindCopy      Kind = "copy"
	KindMove      Kind = "move"
	KindDelete    Kind = "delete"
	KindMkdir     Kind = "mkdir"
	KindRename    Kind = "rename"
	KindChangeDir Kind = "cd"
	KindChecksum  Kind = "checksum"
)

// 🎯 Command is one user-requested filesystem mutation or navigation action.
//
// The set of implementations is closed: only the types in this package
// satisfy it, so a type switch over them can be exhaustive.
type Command interface {
	// Kind returns the variant tag
	Kind() Kind
	// Destructive reports whether the command can destroy or relocate data
	// and therefore has to pass the confirmation gate
	Destructive() bool

	sealed()
}

// 📋 CopyFile copies Source into the Destination directory
type CopyFile struct {
	Source      string
	Destination string
}

// 🚚 MoveFile moves Source into the Destination directory
type MoveFile struct {
	Source      string
	Destination string
}

// 🗑️ DeleteFile soft-deletes Path into the trash
type DeleteFile struct {
	Path string
}

// 📁 CreateDirectory creates Path and any missing parents
type CreateDirectory struct {
	Path string
}

// 🏷️ RenameFile renames OldPath to NewPath
type RenameFile struct {
	OldPath string
	NewPath string
}

// 🧭 ChangeDirectory points Panel at NewPath
type ChangeDirectory struct {
	Panel   Panel
	NewPath string
}

// 🔐 CalculateChecksum digests Path with Algorithm
type CalculateChecksum struct {
	Path      string
	Algorithm ChecksumAlgorithm
}

func (CopyFile) Kind() Kind          { return KindCopy }
func (MoveFile) Kind() Kind          { return KindMove }
func (DeleteFile) Kind() Kind        { return KindDelete }
func (CreateDirectory) Kind() Kind   { return KindMkdir }
func (RenameFile) Kind() Kind        { return KindRename }
func (ChangeDirectory) Kind() Kind   { return KindChangeDir }
func (CalculateChecksum) Kind() Kind { return KindChecksum }

func (CopyFile) Destructive() bool          { return true }
func (MoveFile) Destructive() bool          { return true }
func (DeleteFile) Destructive() bool        { return true }
func (CreateDirectory) Destructive() bool   { return false }
func (RenameFile) Destructive() bool        { return true }
func (ChangeDirectory) Destructive() bool   { return false }
func (CalculateChecksum) Destructive() bool { return false }

func (CopyFile) sealed()          {}
func (MoveFile) sealed()          {}
func (DeleteFile) sealed()        {}
func (CreateDirectory) sealed()   {}
func (RenameFile) sealed()        {}
func (ChangeDirectory) sealed()   {}
func (CalculateChecksum) sealed() {}

// 📝 Describe renders the log phrase announcing a command
func Describe(cmd Command) string {
	switch c := cmd.(type) {
	case CopyFile:
		return fmt.Sprintf("Copying %s to %s", c.Source, c.Destination)
	case MoveFile:
		return fmt.Sprintf("Moving %s to %s", c.Source, c.Destination)
	case DeleteFile:
		return fmt.Sprintf("Deleting %s", c.Path)
	case CreateDirectory:
		return fmt.Sprintf("Creating directory %s", c.Path)
	case RenameFile:
		return fmt.Sprintf("Renaming %s to %s", c.OldPath, c.NewPath)
	case ChangeDirectory:
		return fmt.Sprintf("Changing panel %s to %s", c.Panel, c.NewPath)
	case CalculateChecksum:
		return fmt.Sprintf("Calculating %s checksum for %s", c.Algorithm, c.Path)
	default:
		return fmt.Sprintf("Unknown command %T", cmd)
	}
}

// 🔁 DescribeHistory renders a command for the undo/redo log, prefixed by
// the direction ("Undo" or "Redo")
func DescribeHistory(direction string, cmd Command) string {
	switch c := cmd.(type) {
	case CopyFile:
		return fmt.Sprintf("%s: Copy %s -> %s", direction, c.Source, c.Destination)
	case MoveFile:
		return fmt.Sprintf("%s: Move %s -> %s", direction, c.Source, c.Destination)
	case DeleteFile:
		return fmt.Sprintf("%s: Delete %s", direction, c.Path)
	case CreateDirectory:
		return fmt.Sprintf("%s: Create %s", direction, c.Path)
	case RenameFile:
		if direction == "Undo" {
			return fmt.Sprintf("%s: Rename %s -> %s", direction, c.NewPath, c.OldPath)
		}
		return fmt.Sprintf("%s: Rename %s -> %s", direction, c.OldPath, c.NewPath)
	case ChangeDirectory:
		return fmt.Sprintf("%s: Change directory for panel %s", direction, c.Panel)
	case CalculateChecksum:
		return fmt.Sprintf("%s: %s checksum for %s", direction, c.Algorithm, c.Path)
	default:
		return fmt.Sprintf("%s: %T", direction, cmd)
	}
}

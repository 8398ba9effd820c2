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

// Package tab holds the per-tab state of the dual panel file view: the two
// working directories, selections, command history and the undo/redo stacks.
package tab

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/filepane/pkg/command"
)

const (
	// DefaultSpeedLimit is the advisory copy speed of a new tab, in MB/s
	DefaultSpeedLimit = 10.0
	// DefaultAlgorithm is the checksum algorithm of a new tab
	DefaultAlgorithm = command.SHA256
)

// 📑 Tab is one independent dual-panel navigation context
type Tab struct {
	Name              string
	LeftPath          string
	RightPath         string
	Filter            string
	ShowCheckboxes    bool
	ChecksumAlgorithm command.ChecksumAlgorithm
	CopySpeedLimit    float64 // MB/s, advisory

	selected   [2]*orderedSet
	checkboxes [2]map[string]struct{}

	history []command.Command
	undo    []command.Command
	redo    []command.Command
}

// 🏭 New creates a tab pointing both panels at the given paths
func New(name, left, right string) *Tab {
	t := &Tab{
		Name:              name,
		LeftPath:          left,
		RightPath:         right,
		ChecksumAlgorithm: DefaultAlgorithm,
		CopySpeedLimit:    DefaultSpeedLimit,
	}
	for i := range t.selected {
		t.selected[i] = newOrderedSet()
		t.checkboxes[i] = make(map[string]struct{})
	}
	return t
}

// DefaultPath returns the process working directory, or the filesystem root
// when it cannot be determined
func DefaultPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}
	return wd
}

// Path returns the working directory of a panel
func (t *Tab) Path(panel command.Panel) string {
	if panel == command.PanelRight {
		return t.RightPath
	}
	return t.LeftPath
}

// SetPath points a panel at a new directory. Selections and checkboxes of
// that panel refer to the old listing and are cleared. Unknown panels are
// ignored, as they are by every other panel accessor.
func (t *Tab) SetPath(panel command.Panel, path string) {
	if !panel.Valid() {
		return
	}
	if panel == command.PanelRight {
		t.RightPath = path
	} else {
		t.LeftPath = path
	}
	t.ClearSelection(panel)
}

// ClearSelection drops the selection and checkboxes of a panel
func (t *Tab) ClearSelection(panel command.Panel) {
	if !panel.Valid() {
		return
	}
	t.selected[panel].clear()
	t.checkboxes[panel] = make(map[string]struct{})
}

// Select adds an entry name to the panel selection
func (t *Tab) Select(panel command.Panel, name string) {
	if !panel.Valid() {
		return
	}
	t.selected[panel].add(name)
}

// Deselect removes an entry name from the panel selection
func (t *Tab) Deselect(panel command.Panel, name string) {
	if !panel.Valid() {
		return
	}
	t.selected[panel].remove(name)
}

// ToggleSelect flips the selection state of an entry and reports the new state
func (t *Tab) ToggleSelect(panel command.Panel, name string) bool {
	if !panel.Valid() {
		return false
	}
	if t.selected[panel].has(name) {
		t.selected[panel].remove(name)
		return false
	}
	t.selected[panel].add(name)
	return true
}

// Selection returns the selected names of a panel in selection order
func (t *Tab) Selection(panel command.Panel) []string {
	if !panel.Valid() {
		return nil
	}
	return t.selected[panel].values()
}

// Check ticks the checkbox of an entry
func (t *Tab) Check(panel command.Panel, name string) {
	if !panel.Valid() {
		return
	}
	t.checkboxes[panel][name] = struct{}{}
}

// Uncheck clears the checkbox of an entry
func (t *Tab) Uncheck(panel command.Panel, name string) {
	if !panel.Valid() {
		return
	}
	delete(t.checkboxes[panel], name)
}

// Checked returns the ticked names of a panel, sorted
func (t *Tab) Checked(panel command.Panel) []string {
	if !panel.Valid() {
		return nil
	}
	out := make([]string, 0, len(t.checkboxes[panel]))
	for name := range t.checkboxes[panel] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasSelection reports whether any panel has a selection or a ticked checkbox
func (t *Tab) HasSelection() bool {
	for i := range t.selected {
		if t.selected[i].len() > 0 || len(t.checkboxes[i]) > 0 {
			return true
		}
	}
	return false
}

// SelectedPaths returns the full paths a panel operation applies to:
// checkboxes first, then the selection, without duplicates
func (t *Tab) SelectedPaths(panel command.Panel) []string {
	base := t.Path(panel)
	seen := make(map[string]struct{})
	var out []string
	for _, names := range [][]string{t.Checked(panel), t.Selection(panel)} {
		for _, name := range names {
			p := filepath.Join(base, name)
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether an entry name passes the tab filter
func (t *Tab) Matches(name string) bool {
	return MatchFilter(t.Filter, name)
}

// MatchFilter reports whether name passes filter. The filter is a doublestar
// glob; an empty filter matches everything and a filter without glob
// characters matches as a substring.
func MatchFilter(filter, name string) bool {
	if filter == "" {
		return true
	}
	pattern := filter
	if !containsGlob(pattern) {
		pattern = "*" + pattern + "*"
	}
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return false
	}
	return ok
}

func containsGlob(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// 📜 Record appends an applied command to the history and the undo stack.
// Any pending redo chain is invalidated.
func (t *Tab) Record(cmd command.Command) {
	t.history = append(t.history, cmd)
	t.undo = append(t.undo, cmd)
	t.redo = nil
}

// History returns every command applied in this tab, oldest first
func (t *Tab) History() []command.Command {
	return append([]command.Command(nil), t.history...)
}

// UndoStack returns the undo stack, most recent last
func (t *Tab) UndoStack() []command.Command {
	return append([]command.Command(nil), t.undo...)
}

// RedoStack returns the redo stack, most recent last
func (t *Tab) RedoStack() []command.Command {
	return append([]command.Command(nil), t.redo...)
}

// PopUndo removes and returns the most recent undoable command
func (t *Tab) PopUndo() (command.Command, bool) {
	return pop(&t.undo)
}

// PushUndo puts a command back on the undo stack without touching redo
func (t *Tab) PushUndo(cmd command.Command) {
	t.undo = append(t.undo, cmd)
}

// PopRedo removes and returns the most recently undone command
func (t *Tab) PopRedo() (command.Command, bool) {
	return pop(&t.redo)
}

// PushRedo puts an undone command on the redo stack
func (t *Tab) PushRedo(cmd command.Command) {
	t.redo = append(t.redo, cmd)
}

func pop(stack *[]command.Command) (command.Command, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	cmd := s[len(s)-1]
	*stack = s[:len(s)-1]
	return cmd, true
}

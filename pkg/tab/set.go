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

package tab

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOutOfRange is returned for a tab index that does not exist
	ErrOutOfRange = errors.Base("tab index out of range")
	// ErrLastTab is returned when closing the only remaining tab
	ErrLastTab = errors.Base("cannot close the last tab")
)

// 🗂️ Set is the ordered list of open tabs and the index of the active one.
// A set always holds at least one tab.
type Set struct {
	tabs   []*Tab
	active int
}

// NewSet creates a set with a single tab whose panels both point at path.
// An empty path falls back to the process working directory.
func NewSet(path string) *Set {
	if path == "" {
		path = DefaultPath()
	}
	return &Set{tabs: []*Tab{New("Tab 1", path, path)}}
}

// Len returns the number of open tabs
func (s *Set) Len() int {
	return len(s.tabs)
}

// ActiveIndex returns the index of the active tab
func (s *Set) ActiveIndex() int {
	return s.active
}

// Active returns the active tab
func (s *Set) Active() *Tab {
	return s.tabs[s.active]
}

// At returns the tab at index i
func (s *Set) At(i int) (*Tab, error) {
	if i < 0 || i >= len(s.tabs) {
		return nil, errors.Errorf("%w: %d of %d", ErrOutOfRange, i, len(s.tabs))
	}
	return s.tabs[i], nil
}

// All returns the open tabs in display order
func (s *Set) All() []*Tab {
	return append([]*Tab(nil), s.tabs...)
}

// Select makes the tab at index i active
func (s *Set) Select(i int) error {
	if _, err := s.At(i); err != nil {
		return err
	}
	s.active = i
	return nil
}

// Open appends a new tab that starts at the active tab's paths and makes it
// active. An empty name gets a numbered default.
func (s *Set) Open(name string) *Tab {
	if name == "" {
		name = fmt.Sprintf("Tab %d", len(s.tabs)+1)
	}
	cur := s.Active()
	t := New(name, cur.LeftPath, cur.RightPath)
	s.tabs = append(s.tabs, t)
	s.active = len(s.tabs) - 1
	return t
}

// Duplicate inserts a copy of the active tab's paths right after it and
// makes the copy active. History and selections are not copied.
func (s *Set) Duplicate() *Tab {
	cur := s.Active()
	t := New(cur.Name+" Copy", cur.LeftPath, cur.RightPath)
	t.Filter = cur.Filter
	t.ShowCheckboxes = cur.ShowCheckboxes
	t.ChecksumAlgorithm = cur.ChecksumAlgorithm
	t.CopySpeedLimit = cur.CopySpeedLimit

	at := s.active + 1
	s.tabs = append(s.tabs, nil)
	copy(s.tabs[at+1:], s.tabs[at:])
	s.tabs[at] = t
	s.active = at
	return t
}

// Close removes the tab at index i. The active index is kept in bounds.
func (s *Set) Close(i int) error {
	if _, err := s.At(i); err != nil {
		return err
	}
	if len(s.tabs) == 1 {
		return ErrLastTab
	}
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	if s.active > i || s.active >= len(s.tabs) {
		s.active--
	}
	if s.active < 0 {
		s.active = 0
	}
	return nil
}

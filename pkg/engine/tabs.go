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

	"github.com/walteh/filepane/pkg/tab"
	"gitlab.com/tozd/go/errors"
)

// OpenTab opens a tab at the active tab's paths and makes it active
func (e *Engine) OpenTab(ctx context.Context, name string) *tab.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Open(name)
	e.logger.Infof("Opened tab: %s", t.Name)
	return t
}

// DuplicateTab copies the active tab next to it and makes the copy active
func (e *Engine) DuplicateTab(ctx context.Context) *tab.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Duplicate()
	e.logger.Infof("Duplicated tab to: %s", t.Name)
	return t
}

// CloseTab closes the tab at index. The last tab cannot be closed.
func (e *Engine) CloseTab(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.tabs.At(index)
	if err != nil {
		return errors.Errorf("closing tab: %w", err)
	}
	if err := e.tabs.Close(index); err != nil {
		e.logger.Warningf("⚠️ %v", err)
		return errors.Errorf("closing tab: %w", err)
	}
	e.logger.Infof("Closed tab: %s", t.Name)
	return nil
}

// SelectTab makes the tab at index active
func (e *Engine) SelectTab(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tabs.Select(index); err != nil {
		return errors.Errorf("selecting tab: %w", err)
	}
	return nil
}

// 💾 SaveSession writes every tab's paths and settings to path
func (e *Engine) SaveSession(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := tab.SaveSession(ctx, path, e.tabs); err != nil {
		e.logger.Errorf("Failed to save all tabs: %v", err)
		return err
	}
	e.logger.Successf("Saved %d tabs to %s", e.tabs.Len(), path)
	return nil
}

// LoadSession replaces the open tabs with the ones saved at path. History
// is not persisted, so the loaded tabs start with empty stacks.
func (e *Engine) LoadSession(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, err := tab.LoadSession(ctx, path)
	if err != nil {
		e.logger.Errorf("Failed to load tabs: %v", err)
		return err
	}
	e.tabs = set
	e.logger.Infof("Loaded paths from %s", path)
	return nil
}

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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/command"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 💾 Session is the persisted form of a tab set
type Session struct {
	ActiveTab int          `yaml:"active_tab"`
	Tabs      []SessionTab `yaml:"tabs"`
}

// SessionTab is the persisted form of one tab. Paths are stored with
// forward slashes.
type SessionTab struct {
	Name              string                    `yaml:"name"`
	LeftPath          string                    `yaml:"left_path"`
	RightPath         string                    `yaml:"right_path"`
	Filter            string                    `yaml:"filter,omitempty"`
	ShowCheckboxes    bool                      `yaml:"show_checkboxes"`
	ChecksumAlgorithm command.ChecksumAlgorithm `yaml:"checksum_algorithm"`
	CopySpeedLimit    float64                   `yaml:"copy_speed_limit"`
}

// Snapshot captures the persistable part of a set
func (s *Set) Snapshot() Session {
	sess := Session{ActiveTab: s.active}
	for _, t := range s.tabs {
		sess.Tabs = append(sess.Tabs, SessionTab{
			Name:              t.Name,
			LeftPath:          filepath.ToSlash(t.LeftPath),
			RightPath:         filepath.ToSlash(t.RightPath),
			Filter:            t.Filter,
			ShowCheckboxes:    t.ShowCheckboxes,
			ChecksumAlgorithm: t.ChecksumAlgorithm,
			CopySpeedLimit:    t.CopySpeedLimit,
		})
	}
	return sess
}

// FromSession rebuilds a set from its persisted form
func FromSession(sess Session) (*Set, error) {
	if len(sess.Tabs) == 0 {
		return nil, errors.Errorf("session has no tabs")
	}
	s := &Set{}
	for _, st := range sess.Tabs {
		t := New(st.Name, filepath.FromSlash(st.LeftPath), filepath.FromSlash(st.RightPath))
		t.Filter = st.Filter
		t.ShowCheckboxes = st.ShowCheckboxes
		t.ChecksumAlgorithm = st.ChecksumAlgorithm
		if st.CopySpeedLimit > 0 {
			t.CopySpeedLimit = st.CopySpeedLimit
		}
		s.tabs = append(s.tabs, t)
	}
	if err := s.Select(sess.ActiveTab); err != nil {
		s.active = 0
	}
	return s, nil
}

// SaveSession writes the set to path as YAML
func SaveSession(ctx context.Context, path string, s *Set) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("tabs", s.Len()).Msg("saving tab session")

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.Snapshot()); err != nil {
		return errors.Errorf("encoding session: %w", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Errorf("writing session: %w", err)
	}
	return nil
}

// LoadSession reads a set previously written by SaveSession
func LoadSession(ctx context.Context, path string) (*Set, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading tab session")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading session: %w", err)
	}

	var sess Session
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sess); err != nil {
		return nil, errors.Errorf("parsing session: %w", err)
	}

	s, err := FromSession(sess)
	if err != nil {
		return nil, errors.Errorf("restoring session: %w", err)
	}
	return s, nil
}

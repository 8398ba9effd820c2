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

package command_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filepane/pkg/command"
)

func TestDestructive(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.Command
		want bool
	}{
		{name: "copy", cmd: command.CopyFile{Source: "a", Destination: "b"}, want: true},
		{name: "move", cmd: command.MoveFile{Source: "a", Destination: "b"}, want: true},
		{name: "delete", cmd: command.DeleteFile{Path: "a"}, want: true},
		{name: "rename", cmd: command.RenameFile{OldPath: "a", NewPath: "b"}, want: true},
		{name: "mkdir", cmd: command.CreateDirectory{Path: "a"}, want: false},
		{name: "cd", cmd: command.ChangeDirectory{Panel: command.PanelLeft, NewPath: "a"}, want: false},
		{name: "checksum", cmd: command.CalculateChecksum{Path: "a", Algorithm: command.MD5}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Destructive())
		})
	}
}

func TestPanelValid(t *testing.T) {
	assert.True(t, command.PanelLeft.Valid())
	assert.True(t, command.PanelRight.Valid())
	assert.False(t, command.Panel(2).Valid())
	assert.False(t, command.Panel(-1).Valid())
	assert.Equal(t, "unknown", command.Panel(2).String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Copying /src/a.txt to /dst", command.Describe(command.CopyFile{Source: "/src/a.txt", Destination: "/dst"}))
	assert.Equal(t, "Changing panel right to /tmp", command.Describe(command.ChangeDirectory{Panel: command.PanelRight, NewPath: "/tmp"}))
	assert.Equal(t, "Calculating CRC32 checksum for x", command.Describe(command.CalculateChecksum{Path: "x", Algorithm: command.CRC32}))
	assert.Equal(t, "Undo: Rename b -> a", command.DescribeHistory("Undo", command.RenameFile{OldPath: "a", NewPath: "b"}))
	assert.Equal(t, "Redo: Rename a -> b", command.DescribeHistory("Redo", command.RenameFile{OldPath: "a", NewPath: "b"}))
}

func TestParseChecksumAlgorithm(t *testing.T) {
	for _, name := range []string{"md5", "Sha1", "SHA-256", " crc32 "} {
		_, err := command.ParseChecksumAlgorithm(name)
		require.NoError(t, err, name)
	}

	alg, err := command.ParseChecksumAlgorithm("sha-256")
	require.NoError(t, err)
	assert.Equal(t, command.SHA256, alg)

	_, err = command.ParseChecksumAlgorithm("blake3")
	require.Error(t, err)
}

func TestNewPendingOperation(t *testing.T) {
	now := time.Unix(1700000000, 0)

	t.Run("copy_carries_destination", func(t *testing.T) {
		op, ok := command.NewPendingOperation(command.CopyFile{Source: "/a", Destination: "/b"}, now)
		require.True(t, ok)
		assert.Equal(t, command.OperationCopy, op.Type)
		assert.Equal(t, "/a", op.SourcePath)
		require.NotNil(t, op.DestinationPath)
		assert.Equal(t, "/b", *op.DestinationPath)
		assert.Nil(t, op.OriginalPath)
		assert.Equal(t, now, op.Timestamp)
	})

	t.Run("move_keeps_original", func(t *testing.T) {
		op, ok := command.NewPendingOperation(command.MoveFile{Source: "/a", Destination: "/b"}, now)
		require.True(t, ok)
		require.NotNil(t, op.OriginalPath)
		assert.Equal(t, "/a", *op.OriginalPath)
	})

	t.Run("delete_uses_path_twice", func(t *testing.T) {
		op, ok := command.NewPendingOperation(command.DeleteFile{Path: "/a"}, now)
		require.True(t, ok)
		assert.Equal(t, "/a", op.SourcePath)
		require.NotNil(t, op.OriginalPath)
		assert.Equal(t, "/a", *op.OriginalPath)
		assert.Nil(t, op.DestinationPath)
	})

	t.Run("non_destructive_not_staged", func(t *testing.T) {
		_, ok := command.NewPendingOperation(command.CalculateChecksum{Path: "/a"}, now)
		assert.False(t, ok)
	})
}

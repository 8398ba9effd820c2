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

package checksum

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filepane/pkg/command"
)

func TestFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	tests := []struct {
		alg  command.ChecksumAlgorithm
		want string
	}{
		{alg: command.MD5, want: "5d41402abc4b2a76b9719d911017c592"},
		{alg: command.SHA1, want: "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{alg: command.SHA256, want: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{alg: command.CRC32, want: "3610a686"},
	}

	for _, tt := range tests {
		t.Run(strings.ToLower(tt.alg.String()), func(t *testing.T) {
			got, err := File(ctx, path, tt.alg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileErrors(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()

	_, err := File(ctx, filepath.Join(dir, "missing"), command.SHA256)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = File(ctx, dir, command.SHA256)
	require.Error(t, err)

	_, err = New(command.ChecksumAlgorithm(42))
	require.Error(t, err)
}

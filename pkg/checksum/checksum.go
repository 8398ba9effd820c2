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

// Package checksum computes file digests for the algorithms a tab can select.
package checksum

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"hash/crc32"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/command"
	"gitlab.com/tozd/go/errors"
)

// New returns a fresh hash for alg
func New(alg command.ChecksumAlgorithm) (hash.Hash, error) {
	switch alg {
	case command.MD5:
		return md5.New(), nil
	case command.SHA1:
		return sha1.New(), nil
	case command.SHA256:
		return sha256.New(), nil
	case command.CRC32:
		return crc32.NewIEEE(), nil
	default:
		return nil, errors.Errorf("unsupported checksum algorithm %d", int(alg))
	}
}

// Reader digests everything read from r and returns lowercase hex
func Reader(r io.Reader, alg command.ChecksumAlgorithm) (string, error) {
	h, err := New(alg)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Errorf("hashing: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// 🔐 File digests a regular file
func File(ctx context.Context, path string, alg command.ChecksumAlgorithm) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum, err := Reader(f, alg)
	if err != nil {
		return "", errors.Errorf("digesting %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("algorithm", alg.String()).Int64("size", info.Size()).Msg("checksum computed")
	return sum, nil
}
